package errcatalog

import (
	"fmt"
	"strings"
)

// Field selects one of the two templates held by a catalog entry.
type Field string

const (
	FieldName        Field = "Name"
	FieldDescription Field = "Description"
)

// ParseField accepts a field name in any letter case.
func ParseField(s string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, true
	case "description":
		return FieldDescription, true
	}
	return "", false
}

// Completion is the review state of a translated template.
type Completion uint8

const (
	// Finished marks a reviewed translation.
	Finished Completion = iota
	// Draft marks an unfinished translation. It is still usable but flagged as lower quality.
	Draft
)

func (c Completion) String() string {
	if c == Draft {
		return "draft"
	}
	return "finished"
}

// MarshalText renders the completion as "finished" or "draft".
func (c Completion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Record is one decoded template of a locale resource.
type Record struct {
	Category   Category
	Kind       Kind
	Field      Field
	Completion Completion
	Template   string
}

// LocaleResource is the decoded content of one resource set for one locale.
// Source names where it came from (a file path or object key) and is only used in diagnostics.
type LocaleResource struct {
	Locale  string
	Source  string
	Records []Record
}

// EntryKey identifies a single template in the catalog.
type EntryKey struct {
	Category Category `json:"category"`
	Kind     Kind     `json:"kind"`
	Locale   string   `json:"locale"`
	Field    Field    `json:"field"`
}

func (k EntryKey) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", k.Category, k.Kind, k.Locale, k.Field)
}

// Template is a message template together with its completion state.
type Template struct {
	Text       string
	Completion Completion
}

// MessageEntry holds the templates of one (category, kind, locale) triple.
// A nil field was not defined by any loaded resource.
type MessageEntry struct {
	Key         Key
	Locale      string
	Name        *Template
	Description *Template
}

// Completion is Draft when any defined field is a draft.
func (e MessageEntry) Completion() Completion {
	if (e.Name != nil && e.Name.Completion == Draft) ||
		(e.Description != nil && e.Description.Completion == Draft) {
		return Draft
	}
	return Finished
}

func (e *MessageEntry) field(f Field) *Template {
	if f == FieldName {
		return e.Name
	}
	return e.Description
}

func (e *MessageEntry) setField(f Field, t *Template) {
	if f == FieldName {
		e.Name = t
		return
	}
	e.Description = t
}

func (e *MessageEntry) clone() MessageEntry {
	out := MessageEntry{Key: e.Key, Locale: e.Locale}
	if e.Name != nil {
		name := *e.Name
		out.Name = &name
	}
	if e.Description != nil {
		desc := *e.Description
		out.Description = &desc
	}
	return out
}
