package errcatalog

import (
	"fmt"
	"strings"
)

// placeholder is the only substitution token templates may carry.
const placeholder = "%1"

// HasPlaceholder reports whether the template contains the %1 placeholder.
func HasPlaceholder(template string) bool {
	return placeholderIndex(template, 0) >= 0
}

// placeholderIndex returns the position of the next %1 at or after from that is not
// the start of a longer number such as %10.
func placeholderIndex(template string, from int) int {
	for from < len(template) {
		i := strings.Index(template[from:], placeholder)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(placeholder)
		if end < len(template) && template[end] >= '0' && template[end] <= '9' {
			from = end
			continue
		}
		return i
	}
	return -1
}

// Format substitutes every %1 in template with the string form of the first argument.
// Any other %-token is kept literally and surplus arguments are ignored.
// A template with %1 and no argument yields a *FormatError.
//
// Example:
//
//	msg, err := errcatalog.Format("internal error code: %1", 42)
//	// msg == "internal error code: 42"
func Format(template string, args ...any) (string, error) {
	i := placeholderIndex(template, 0)
	if i < 0 {
		return template, nil
	}
	if len(args) == 0 {
		return template, &FormatError{Reason: ReasonMissingArgument, Template: template}
	}

	value := fmt.Sprint(args[0])
	var b strings.Builder
	b.Grow(len(template) + len(value))

	last := 0
	for i >= 0 {
		b.WriteString(template[last:i])
		b.WriteString(value)
		last = i + len(placeholder)
		i = placeholderIndex(template, last)
	}
	b.WriteString(template[last:])
	return b.String(), nil
}
