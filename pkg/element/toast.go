package element

import (
	"strings"

	"github.com/glint-dev/glint/pkg/errs"
	"github.com/glint-dev/glint/pkg/protocol"
	"github.com/glint-dev/glint/pkg/stringutil"
)

// KindToast is the element kind for toast notifications.
const KindToast = "toast"

// Toast type values. An empty type renders as a neutral toast.
const (
	ToastTypeSuccess = "success"
	ToastTypeWarning = "warning"
	ToastTypeError   = "error"
)

// ToastMessage is the immutable payload of a toast element.
//
// Text is never blank. Icon is empty or exactly one emoji glyph. Type is
// empty (neutral) or one of the toast type constants.
type ToastMessage struct {
	Text string
	Icon string
	Type string
}

// EncodeTo encodes the message using the provided encoder.
func (m *ToastMessage) EncodeTo(e *protocol.Encoder) {
	e.WriteString(m.Text)
	e.WriteString(m.Icon)
	e.WriteString(m.Type)
}

// DecodeToastMessage decodes a toast payload.
func DecodeToastMessage(data []byte) (*ToastMessage, error) {
	d := protocol.NewDecoder(data)

	text, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	icon, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	typ, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	return &ToastMessage{Text: text, Icon: icon, Type: typ}, nil
}

// ValidateToastType checks and normalizes a toast type.
//
// An empty string means "no type" and is returned as-is. Any other value is
// lowercased and must be one of "success", "warning", or "error".
func ValidateToastType(toastType string) (string, error) {
	if toastType == "" {
		return "", nil
	}
	normalized := strings.ToLower(toastType)
	switch normalized {
	case ToastTypeSuccess, ToastTypeWarning, ToastTypeError:
		return normalized, nil
	}
	return "", errs.InvalidArgument(
		"invalid toast type: %q. Valid types are %q, %q, %q, or an empty string.",
		normalized, ToastTypeSuccess, ToastTypeWarning, ToastTypeError)
}

// ValidateToastText checks that toast text is not blank. The comparison is
// on value, never identity.
func ValidateToastText(text string) error {
	if text == "" {
		return errs.InvalidArgument("toast text cannot be blank - please provide a message")
	}
	return nil
}

// ToastOption configures a toast element.
type ToastOption func(*toastOptions)

type toastOptions struct {
	icon      string
	toastType string
}

// WithIcon sets the toast icon: a single emoji glyph such as "🚨", "🔥",
// or "🤖". Shortcodes like ":fire:" are rejected.
func WithIcon(icon string) ToastOption {
	return func(o *toastOptions) {
		o.icon = icon
	}
}

// WithToastType sets the toast type, which influences its color on the
// front end. Input is case-insensitive.
func WithToastType(toastType string) ToastOption {
	return func(o *toastOptions) {
		o.toastType = toastType
	}
}

// Toast displays a short notification message.
//
// The text is required and must not be blank; it is cleaned (dedented and
// trimmed) before display. Display position and auto-dismiss timing are
// owned by the front end.
//
// Validation runs before anything is enqueued: a failure in text, icon, or
// type checking returns the error and submits nothing.
func (dg *DeltaGenerator) Toast(text string, opts ...ToastOption) (*Handle, error) {
	var o toastOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := ValidateToastText(text); err != nil {
		return nil, err
	}
	cleaned := stringutil.CleanText(text)

	icon, err := stringutil.ValidateEmoji(o.icon)
	if err != nil {
		return nil, err
	}

	typ, err := ValidateToastType(o.toastType)
	if err != nil {
		return nil, err
	}

	msg := &ToastMessage{
		Text: cleaned,
		Icon: icon,
		Type: typ,
	}
	return dg.enqueue(KindToast, msg.EncodeTo)
}

// ToastSuccess shows a success toast.
//
//	dg.ToastSuccess("Changes saved!")
func (dg *DeltaGenerator) ToastSuccess(text string, opts ...ToastOption) (*Handle, error) {
	return dg.Toast(text, append(opts, WithToastType(ToastTypeSuccess))...)
}

// ToastWarning shows a warning toast.
func (dg *DeltaGenerator) ToastWarning(text string, opts ...ToastOption) (*Handle, error) {
	return dg.Toast(text, append(opts, WithToastType(ToastTypeWarning))...)
}

// ToastError shows an error toast.
func (dg *DeltaGenerator) ToastError(text string, opts ...ToastOption) (*Handle, error) {
	return dg.Toast(text, append(opts, WithToastType(ToastTypeError))...)
}
