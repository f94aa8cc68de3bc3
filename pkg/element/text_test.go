package element_test

import (
	"testing"

	"github.com/glint-dev/glint/pkg/element"
)

func TestText(t *testing.T) {
	q := &mockQueue{}
	dg := element.NewDeltaGenerator(q)

	if _, err := dg.Text("  hello  "); err != nil {
		t.Fatalf("Text: %v", err)
	}

	d := q.deltas[0]
	if d.Kind != element.KindText {
		t.Errorf("kind = %q", d.Kind)
	}
	msg, err := element.DecodeTextMessage(d.Payload)
	if err != nil {
		t.Fatalf("DecodeTextMessage: %v", err)
	}
	if msg.Body != "hello" {
		t.Errorf("body = %q", msg.Body)
	}
}

func TestMarkdownDedents(t *testing.T) {
	q := &mockQueue{}
	dg := element.NewDeltaGenerator(q)

	if _, err := dg.Markdown("\n\t\t# Title\n\t\tbody\n"); err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	d := q.deltas[0]
	if d.Kind != element.KindMarkdown {
		t.Errorf("kind = %q", d.Kind)
	}
	msg, _ := element.DecodeTextMessage(d.Payload)
	if msg.Body != "# Title\nbody" {
		t.Errorf("body = %q", msg.Body)
	}
}
