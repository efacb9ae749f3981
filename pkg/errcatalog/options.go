package errcatalog

import (
	"io"
	"log/slog"
)

// Option is a function that configures a Catalog instance.
type Option func(*Catalog)

// QualityObserver receives every resolved message.
// It is the hook for localization-debt telemetry and must not block.
type QualityObserver interface {
	ObserveResolution(msg ResolvedMessage)
}

// LocaleObserver is implemented by observers that need the supported locales.
// Load calls ObserveLocales with the sorted canonical locales of every catalog it
// builds, so a Store reload keeps the observer current.
type LocaleObserver interface {
	ObserveLocales(locales []string)
}

// WithLogger provides a customizable logger for the catalog.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithQualityLogging controls whether degraded resolutions (fallbacks and drafts)
// are logged. Default is false to avoid excessive logging.
func WithQualityLogging(enabled bool) Option {
	return func(c *Catalog) {
		c.qualityLogging = enabled
	}
}

// WithObserver registers an observer notified after every resolution.
func WithObserver(observer QualityObserver) Option {
	return func(c *Catalog) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithNoLogging is a convenience option that disables all logging.
func WithNoLogging() Option {
	return func(c *Catalog) {
		c.logger = discardLogger()
		c.qualityLogging = false
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
