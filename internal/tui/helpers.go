package tui

import (
	"errors"
	"strings"

	"github.com/existflow/irongantt/internal/gantt"
)

// truncate shortens a string to max runes with an ellipsis
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// fit truncates or pads s to exactly width runes
func fit(s string, width int) string {
	s = truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// isFieldError reports whether err is a validation error on field
func isFieldError(err error, field string) bool {
	var ve *gantt.ValidationError
	return errors.As(err, &ve) && ve.Field == field
}
