package stringutil

import (
	"testing"

	"github.com/glint-dev/glint/pkg/errs"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"surrounding whitespace", "  Saved!  \n", "Saved!"},
		{"indented block", "\n\t\tline one\n\t\tline two\n", "line one\nline two"},
		{"empty", "", ""},
		{"only whitespace", "   \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDedent(t *testing.T) {
	in := "    first\n      second\n\n    third"
	want := "first\n  second\n\nthird"
	if got := Dedent(in); got != want {
		t.Errorf("Dedent = %q, want %q", got, want)
	}
}

func TestValidateEmojiValid(t *testing.T) {
	icons := []string{
		"🔥", "😍", "🚨", "🤖", "⚠️", "✅", "🇺🇸", "🧑‍🚀",
		// Enclosed alphanumerics, enclosed ideographs, game tiles, and
		// text symbols with an emoji variation selector.
		"🆗", "🈯", "🀄", "‼️", "©️", "™️",
	}
	for _, icon := range icons {
		got, err := ValidateEmoji(icon)
		if err != nil {
			t.Errorf("ValidateEmoji(%q) returned error: %v", icon, err)
			continue
		}
		if got != icon {
			t.Errorf("ValidateEmoji(%q) = %q", icon, got)
		}
	}
}

func TestValidateEmojiEmpty(t *testing.T) {
	got, err := ValidateEmoji("")
	if err != nil || got != "" {
		t.Errorf("ValidateEmoji(\"\") = %q, %v", got, err)
	}
}

func TestValidateEmojiInvalid(t *testing.T) {
	for _, icon := range []string{":fire:", "ab", "x", "🔥🔥", "fire"} {
		if _, err := ValidateEmoji(icon); err == nil {
			t.Errorf("ValidateEmoji(%q) should fail", icon)
		} else if !errs.IsInvalidArgument(err) {
			t.Errorf("ValidateEmoji(%q) error is not invalid-argument: %v", icon, err)
		}
	}
}
