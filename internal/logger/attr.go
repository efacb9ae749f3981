package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Source records where catalog resources are loaded from under the key "source".
func Source(source string) slog.Attr {
	return slog.String("source", source)
}

// Locale records a locale under the key "locale".
func Locale(locale string) slog.Attr {
	return slog.String("locale", locale)
}

// Locales records the number of loaded locales and the default one as a group.
func Locales(count int, defaultLocale string) slog.Attr {
	return slog.Group("locales",
		slog.Int("count", count),
		slog.String("default", defaultLocale),
	)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
