package errcatalog

import (
	"context"
	"errors"
	"log/slog"
)

// Match reports whether a resolution found the requested kind or fell back to UnknownError.
type Match uint8

const (
	MatchExact Match = iota
	MatchFallbackToUnknown
)

func (m Match) String() string {
	if m == MatchFallbackToUnknown {
		return "fallback_to_unknown"
	}
	return "exact"
}

// MarshalText renders the match as "exact" or "fallback_to_unknown".
func (m Match) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Quality describes how well a resolved message matches the request.
// When the two fields resolve at different steps the worse outcome is reported.
type Quality struct {
	Match      Match      `json:"match"`
	Completion Completion `json:"completion"`
	// LocaleFallback is true when the default locale served a field.
	LocaleFallback bool `json:"locale_fallback"`
}

// Degraded reports whether the message is anything but an exact, finished
// translation in the requested locale.
func (q Quality) Degraded() bool {
	return q.Match != MatchExact || q.Completion != Finished || q.LocaleFallback
}

// ResolvedMessage is the localized text of an error.
type ResolvedMessage struct {
	// Key is the requested key, not the UnknownError key a fallback may have used.
	Key         Key     `json:"key"`
	Locale      string  `json:"locale"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quality     Quality `json:"quality"`
}

// Resolve returns the localized name and description of the error kind, applying
// args to both templates. Missing translations are resolved through the chain
//
//	(kind, locale) -> (kind, default locale) -> (UnknownError, locale) -> (UnknownError, default locale)
//
// so a missing entry is never an error. The returned error is either
// ErrUnknownCategory or a *FormatError; with a *FormatError the message is still
// filled with the unformatted template.
func (c *Catalog) Resolve(category Category, kind Kind, locale string, args ...any) (ResolvedMessage, error) {
	return c.ResolveFields(category, kind, locale, args, args)
}

// ResolveFields is Resolve with separate arguments for the name and description
// templates, e.g. a server supplied error name and error description.
func (c *Catalog) ResolveFields(category Category, kind Kind, locale string, nameArgs, descriptionArgs []any) (ResolvedMessage, error) {
	key := NewKey(category, kind)
	if !category.Valid() {
		return ResolvedMessage{Key: key, Locale: locale}, ErrUnknownCategory
	}

	requested, ok := CanonicalLocale(locale)
	msg := ResolvedMessage{Key: key, Locale: requested}
	if !ok {
		// An empty locale asks for the default; a malformed one falls back to it.
		requested = c.defaultLocale
		msg.Locale = requested
		msg.Quality.LocaleFallback = locale != ""
	}
	var errs []error

	for _, f := range []struct {
		field Field
		args  []any
		dst   *string
	}{
		{FieldName, nameArgs, &msg.Name},
		{FieldDescription, descriptionArgs, &msg.Description},
	} {
		tmpl, step := c.lookup(key, requested, f.field)
		args := f.args
		if step.unknown {
			msg.Quality.Match = MatchFallbackToUnknown
			// The diagnostic of a fallback is the identifier nobody translated.
			if len(args) == 0 && kind != KindUnknownError {
				args = []any{kind}
			}
		}
		if step.defaultLocale {
			msg.Quality.LocaleFallback = true
		}
		if tmpl.Completion == Draft {
			msg.Quality.Completion = Draft
		}

		text, err := Format(tmpl.Text, args...)
		if err != nil {
			errs = append(errs, err)
		}
		*f.dst = text
	}

	c.report(msg)
	return msg, errors.Join(errs...)
}

// Message is Resolve for rendering paths that cannot handle errors: format
// errors are logged and the unformatted template is returned.
func (c *Catalog) Message(category Category, kind Kind, locale string, args ...any) ResolvedMessage {
	msg, err := c.Resolve(category, kind, locale, args...)
	if err != nil {
		c.logger.Error("error message resolution failed",
			"category", category,
			"kind", kind,
			"locale", locale,
			"error", err,
		)
	}
	return msg
}

type lookupStep struct {
	unknown       bool
	defaultLocale bool
}

// lookup walks the fallback chain for one field. The catalog invariants guarantee
// the last step always hits.
func (c *Catalog) lookup(key Key, locale string, field Field) (Template, lookupStep) {
	chain := [...]struct {
		kind Kind
		step lookupStep
	}{
		{key.Kind, lookupStep{}},
		{key.Kind, lookupStep{defaultLocale: true}},
		{KindUnknownError, lookupStep{unknown: true}},
		{KindUnknownError, lookupStep{unknown: true, defaultLocale: true}},
	}

	for _, link := range chain {
		l := locale
		if link.step.defaultLocale {
			if locale == c.defaultLocale {
				continue
			}
			l = c.defaultLocale
		}
		entry, ok := c.entries[entryID{category: key.Category, kind: link.kind, locale: l}]
		if !ok {
			continue
		}
		if tmpl := entry.field(field); tmpl != nil {
			step := link.step
			// Asking for UnknownError directly is an exact match.
			step.unknown = step.unknown && key.Kind != KindUnknownError
			return *tmpl, step
		}
	}
	return Template{}, lookupStep{unknown: true}
}

func (c *Catalog) report(msg ResolvedMessage) {
	if c.qualityLogging && msg.Quality.Degraded() {
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, "degraded error message",
			slog.String("key", msg.Key.String()),
			slog.String("locale", msg.Locale),
			slog.String("match", msg.Quality.Match.String()),
			slog.String("completion", msg.Quality.Completion.String()),
			slog.Bool("locale_fallback", msg.Quality.LocaleFallback),
		)
	}
	for _, o := range c.observers {
		o.ObserveResolution(msg)
	}
}

// Error is a Go error carrying a localized error message.
type Error struct {
	ResolvedMessage
}

func (e *Error) Error() string {
	return e.Name + ": " + e.Description
}

// Err resolves the message and wraps it as an error value, so localized failures
// can travel through ordinary error returns.
func (c *Catalog) Err(category Category, kind Kind, locale string, args ...any) *Error {
	return &Error{ResolvedMessage: c.Message(category, kind, locale, args...)}
}
