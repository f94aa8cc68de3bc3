// Package stringutil provides text cleaning and emoji validation for
// element text supplied by host scripts.
package stringutil

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/glint-dev/glint/pkg/errs"
)

// CleanText returns display-ready text: common leading indentation is
// removed and surrounding whitespace is trimmed. Scripts often pass
// indented multi-line literals; dedenting keeps markdown bodies intact.
func CleanText(s string) string {
	return strings.TrimSpace(Dedent(s))
}

// Dedent removes the longest whitespace prefix common to all non-blank
// lines of s.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := ""
	first := true
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	if margin == "" {
		return s
	}
	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// ValidateEmoji checks an optional element icon.
//
// An empty string is allowed and returned unchanged (no icon). Otherwise
// the input must be exactly one emoji glyph: a single grapheme cluster that
// the Unicode emoji data classifies as an emoji. Anything else, including
// shortcodes such as ":fire:", is rejected with an invalid-argument error.
func ValidateEmoji(icon string) (string, error) {
	if icon == "" {
		return "", nil
	}
	if uniseg.GraphemeClusterCount(icon) == 1 && gomoji.ContainsEmoji(icon) {
		return icon, nil
	}
	return "", errs.InvalidArgument(
		"The value %q is not a valid emoji. Shortcodes are not allowed, please use a single character instead.", icon)
}
