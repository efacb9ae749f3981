package errcatalog

import (
	"strings"

	"golang.org/x/text/language"
)

// CanonicalLocale normalizes a locale identifier to its BCP 47 form,
// accepting POSIX style separators ("en_us" becomes "en-US").
func CanonicalLocale(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return "", false
	}
	// Qt and POSIX resources name locales like en_US.UTF-8.
	if i := strings.IndexByte(locale, '.'); i > 0 {
		locale = locale[:i]
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
