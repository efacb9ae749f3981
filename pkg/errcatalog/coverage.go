package errcatalog

import (
	"math"
	"slices"
)

// LocaleCoverage summarizes the translation state of one locale against the
// templates of the default locale.
type LocaleCoverage struct {
	Locale      string     `json:"locale"`
	Default     bool       `json:"default"`
	SourceKeys  int        `json:"source_keys"`
	Translated  int        `json:"translated"`
	Finished    int        `json:"finished"`
	Draft       int        `json:"draft"`
	Missing     int        `json:"missing"`
	Extra       int        `json:"extra"`
	Completion  float64    `json:"completion"`
	MissingKeys []EntryKey `json:"missing_keys,omitempty"`
	DraftKeys   []EntryKey `json:"draft_keys,omitempty"`
}

// Coverage reports every locale's translation state, default locale first.
// Completion is the share of source templates with a finished translation.
func (c *Catalog) Coverage() []LocaleCoverage {
	source := c.templateKeys(c.defaultLocale)

	out := make([]LocaleCoverage, 0, len(c.locales))
	for _, locale := range c.orderedLocales() {
		cov := LocaleCoverage{
			Locale:     locale,
			Default:    locale == c.defaultLocale,
			SourceKeys: len(source),
		}

		present := c.templateKeys(locale)
		for k, tmpl := range present {
			if _, ok := source[templateKey{k.key, k.field}]; !ok {
				cov.Extra++
				continue
			}
			cov.Translated++
			if tmpl.Completion == Draft {
				cov.Draft++
				cov.DraftKeys = append(cov.DraftKeys, k.entryKey(locale))
			} else {
				cov.Finished++
			}
		}
		for k := range source {
			if _, ok := present[k]; !ok {
				cov.Missing++
				cov.MissingKeys = append(cov.MissingKeys, k.entryKey(locale))
			}
		}

		if cov.SourceKeys > 0 {
			cov.Completion = math.Round(float64(cov.Finished)/float64(cov.SourceKeys)*1000) / 1000
		}
		sortEntryKeys(cov.MissingKeys)
		sortEntryKeys(cov.DraftKeys)
		out = append(out, cov)
	}
	return out
}

type templateKey struct {
	key   Key
	field Field
}

func (k templateKey) entryKey(locale string) EntryKey {
	return EntryKey{Category: k.key.Category, Kind: k.key.Kind, Locale: locale, Field: k.field}
}

func (c *Catalog) templateKeys(locale string) map[templateKey]Template {
	out := make(map[templateKey]Template)
	for id, entry := range c.entries {
		if id.locale != locale {
			continue
		}
		for _, f := range []Field{FieldName, FieldDescription} {
			if tmpl := entry.field(f); tmpl != nil {
				out[templateKey{entry.Key, f}] = *tmpl
			}
		}
	}
	return out
}

func (c *Catalog) orderedLocales() []string {
	locales := []string{c.defaultLocale}
	for _, l := range c.locales {
		if l != c.defaultLocale {
			locales = append(locales, l)
		}
	}
	return slices.Clip(locales)
}
