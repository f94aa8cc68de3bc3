package element

import (
	"github.com/glint-dev/glint/pkg/protocol"
	"github.com/glint-dev/glint/pkg/stringutil"
)

// Element kinds for plain text and markdown bodies.
const (
	KindText     = "text"
	KindMarkdown = "markdown"
)

// TextMessage is the payload of text and markdown elements.
type TextMessage struct {
	Body string
}

// EncodeTo encodes the message using the provided encoder.
func (m *TextMessage) EncodeTo(e *protocol.Encoder) {
	e.WriteString(m.Body)
}

// DecodeTextMessage decodes a text or markdown payload.
func DecodeTextMessage(data []byte) (*TextMessage, error) {
	d := protocol.NewDecoder(data)
	body, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &TextMessage{Body: body}, nil
}

// Text writes fixed-width, preformatted text.
func (dg *DeltaGenerator) Text(body string) (*Handle, error) {
	msg := &TextMessage{Body: stringutil.CleanText(body)}
	return dg.enqueue(KindText, msg.EncodeTo)
}

// Markdown writes a markdown-formatted body. The body is dedented so that
// indented Go string literals render correctly.
func (dg *DeltaGenerator) Markdown(body string) (*Handle, error) {
	msg := &TextMessage{Body: stringutil.CleanText(body)}
	return dg.enqueue(KindMarkdown, msg.EncodeTo)
}
