package errcatalog

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

type entryID struct {
	category Category
	kind     Kind
	locale   string
}

// Catalog is an immutable table of localized error messages.
// It is built once by Load and is safe for concurrent use without locking.
type Catalog struct {
	entries       map[entryID]*MessageEntry
	locales       []string
	defaultLocale string

	logger         *slog.Logger
	qualityLogging bool
	observers      []QualityObserver
	options        []Option
}

// Load builds a catalog from decoded locale resources.
//
// It fails with a *LoadError when a record is malformed, when the same
// (category, kind, locale, field) is defined twice, when the default locale has
// no resources, or when a locale lacks the NoError or UnknownError entries of a
// category. All violations of the first failing check are reported together.
func Load(resources []LocaleResource, defaultLocale string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[entryID]*MessageEntry),
		logger:  discardLogger(),
		options: slices.Clone(opts),
	}
	for _, opt := range opts {
		opt(c)
	}

	def, ok := CanonicalLocale(defaultLocale)
	if !ok {
		return nil, &LoadError{
			Reason:  ReasonInvalidRecord,
			Details: []string{fmt.Sprintf("invalid default locale %q", defaultLocale)},
		}
	}
	c.defaultLocale = def

	if err := c.insert(resources); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	for _, o := range c.observers {
		if lo, ok := o.(LocaleObserver); ok {
			lo.ObserveLocales(c.Locales())
		}
	}

	c.logger.Info("error catalog loaded",
		"locales", c.locales,
		"default_locale", c.defaultLocale,
		"entries", len(c.entries),
	)
	return c, nil
}

// LoadFrom loads resources through the adapter and builds a catalog from them.
func LoadFrom(ctx context.Context, adapter ResourceAdapter, defaultLocale string, opts ...Option) (*Catalog, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	resources, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Load(resources, defaultLocale, opts...)
}

// insert copies the records into the entry table, rejecting malformed records and
// duplicate keys.
func (c *Catalog) insert(resources []LocaleResource) error {
	var invalid []string
	var duplicates []EntryKey
	seen := make(map[EntryKey]struct{})
	locales := make(map[string]struct{})

	for _, res := range resources {
		source := res.Source
		if source == "" {
			source = "resource"
		}
		locale, ok := CanonicalLocale(res.Locale)
		if !ok {
			invalid = append(invalid, fmt.Sprintf("%s: invalid locale %q", source, res.Locale))
			continue
		}
		locales[locale] = struct{}{}

		for i, rec := range res.Records {
			if msg := checkRecord(rec); msg != "" {
				invalid = append(invalid, fmt.Sprintf("%s[%s] record %d: %s", source, locale, i, msg))
				continue
			}

			key := EntryKey{Category: rec.Category, Kind: rec.Kind, Locale: locale, Field: rec.Field}
			if _, dup := seen[key]; dup {
				duplicates = append(duplicates, key)
				continue
			}
			seen[key] = struct{}{}

			id := entryID{category: rec.Category, kind: rec.Kind, locale: locale}
			entry, ok := c.entries[id]
			if !ok {
				entry = &MessageEntry{Key: NewKey(rec.Category, rec.Kind), Locale: locale}
				c.entries[id] = entry
			}
			entry.setField(rec.Field, &Template{Text: rec.Template, Completion: rec.Completion})
		}
	}

	if len(invalid) > 0 {
		return &LoadError{Reason: ReasonInvalidRecord, Details: invalid}
	}
	if len(duplicates) > 0 {
		sortEntryKeys(duplicates)
		return &LoadError{Reason: ReasonDuplicateKey, Keys: slices.Compact(duplicates)}
	}

	c.locales = make([]string, 0, len(locales))
	for l := range locales {
		c.locales = append(c.locales, l)
	}
	slices.Sort(c.locales)
	return nil
}

func checkRecord(rec Record) string {
	switch {
	case !rec.Category.Valid():
		return fmt.Sprintf("unknown category %q", rec.Category)
	case strings.TrimSpace(string(rec.Kind)) == "":
		return "empty kind"
	case rec.Field != FieldName && rec.Field != FieldDescription:
		return fmt.Sprintf("unknown field %q", rec.Field)
	case rec.Completion != Finished && rec.Completion != Draft:
		return fmt.Sprintf("unknown completion state %d", rec.Completion)
	}
	return ""
}

// validate checks the structural fallbacks the resolver relies on.
func (c *Catalog) validate() error {
	if !slices.Contains(c.locales, c.defaultLocale) {
		return &LoadError{
			Reason:  ReasonMissingDefaultLocale,
			Details: []string{fmt.Sprintf("default locale %q not among %v", c.defaultLocale, c.locales)},
		}
	}

	var missing []EntryKey
	for _, locale := range c.locales {
		for _, category := range Categories() {
			for _, kind := range []Kind{KindNoError, KindUnknownError} {
				entry := c.entries[entryID{category: category, kind: kind, locale: locale}]
				for _, field := range []Field{FieldName, FieldDescription} {
					if entry == nil || entry.field(field) == nil {
						missing = append(missing, EntryKey{Category: category, Kind: kind, Locale: locale, Field: field})
					}
				}
			}
		}
	}
	if len(missing) > 0 {
		sortEntryKeys(missing)
		return &LoadError{Reason: ReasonMissingFallback, Keys: missing}
	}
	return nil
}

func sortEntryKeys(keys []EntryKey) {
	slices.SortFunc(keys, func(a, b EntryKey) int {
		return cmp.Or(
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Locale, b.Locale),
			cmp.Compare(a.Field, b.Field),
		)
	})
}

// DefaultLocale returns the canonical default locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Locales returns the canonical locales that have resources, sorted.
func (c *Catalog) Locales() []string {
	return slices.Clone(c.locales)
}

// HasLocale reports whether any resource was loaded for the locale.
func (c *Catalog) HasLocale(locale string) bool {
	l, ok := CanonicalLocale(locale)
	return ok && slices.Contains(c.locales, l)
}

// Lookup returns the entry stored for the exact (key, locale) pair, without fallback.
func (c *Catalog) Lookup(key Key, locale string) (MessageEntry, bool) {
	l, ok := CanonicalLocale(locale)
	if !ok {
		return MessageEntry{}, false
	}
	entry, ok := c.entries[entryID{category: key.Category, kind: key.Kind, locale: l}]
	if !ok {
		return MessageEntry{}, false
	}
	return entry.clone(), true
}

// Entries returns copies of every entry of the locale sorted by category and kind.
func (c *Catalog) Entries(locale string) []MessageEntry {
	l, ok := CanonicalLocale(locale)
	if !ok {
		return nil
	}
	var out []MessageEntry
	for id, entry := range c.entries {
		if id.locale == l {
			out = append(out, entry.clone())
		}
	}
	slices.SortFunc(out, func(a, b MessageEntry) int {
		return cmp.Or(
			cmp.Compare(a.Key.Category, b.Key.Category),
			cmp.Compare(a.Key.Kind, b.Key.Kind),
		)
	})
	return out
}

// exportedEntry is the JSON shape of an entry.
type exportedEntry struct {
	Name             string `json:"name,omitempty"`
	NameDraft        bool   `json:"name_draft,omitempty"`
	Description      string `json:"description,omitempty"`
	DescriptionDraft bool   `json:"description_draft,omitempty"`
}

// ExportJSON returns all raw templates of a locale as a JSON document shaped
// {category: {kind: {name, description}}}. Useful for client-side rendering.
func (c *Catalog) ExportJSON(locale string) ([]byte, error) {
	if !c.HasLocale(locale) {
		return nil, &LocaleNotSupportedError{Locale: locale}
	}

	doc := make(map[Category]map[Kind]exportedEntry)
	for _, entry := range c.Entries(locale) {
		var out exportedEntry
		if entry.Name != nil {
			out.Name = entry.Name.Text
			out.NameDraft = entry.Name.Completion == Draft
		}
		if entry.Description != nil {
			out.Description = entry.Description.Text
			out.DescriptionDraft = entry.Description.Completion == Draft
		}
		if doc[entry.Key.Category] == nil {
			doc[entry.Key.Category] = make(map[Kind]exportedEntry)
		}
		doc[entry.Key.Category][entry.Key.Kind] = out
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return data, nil
}
