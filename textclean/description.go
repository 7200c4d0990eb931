package textclean

import "strings"

// Markers that upstream feeds append in front of their "read more" boilerplate.
const (
	BracketEllipsis = "[…]"
	KeepReading     = "...Keep reading"
	ParenEllipsis   = "(...)"
)

// CleanDescription cuts the description at the first separator, in priority
// order, that it contains: the item title, then BracketEllipsis, KeepReading
// and ParenEllipsis. Only the first matching separator is applied, even when
// a lower priority one occurs earlier in the text. The result is trimmed.
func CleanDescription(text, title string) string {
	for _, sep := range []string{title, BracketEllipsis, KeepReading, ParenEllipsis} {
		if sep == "" {
			continue
		}
		if before, _, found := strings.Cut(text, sep); found {
			return strings.TrimSpace(before)
		}
	}
	return strings.TrimSpace(text)
}
