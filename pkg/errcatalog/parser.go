package errcatalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
)

// Parser decodes the content of a resource file into locale resources.
type Parser interface {
	// Parse processes the given content and returns one resource per locale it defines.
	Parse(ctx context.Context, content []byte) ([]LocaleResource, error)

	// SupportsFileExtension checks if the parser supports a given file extension
	// The extension may or may not include a leading dot (e.g. both "json" and ".json" are valid)
	SupportsFileExtension(ext string) bool
}

// DefaultParsers returns one instance of every built-in parser.
func DefaultParsers() []Parser {
	return []Parser{NewYAMLParser(), NewJSONParser(), NewTOMLParser(), NewTSParser()}
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	return ParserFor(filename, DefaultParsers()...)
}

// ParserFor returns the first parser supporting the extension of filename, or nil.
func ParserFor(filename string, parsers ...Parser) Parser {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		return nil
	}
	for _, p := range parsers {
		if p != nil && p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// ParseResource parses content with the parser and stamps source on every resource.
func ParseResource(ctx context.Context, parser Parser, source string, content []byte) ([]LocaleResource, error) {
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoParser, source)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResource, source)
	}
	resources, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", source, err))
	}
	for i := range resources {
		if resources[i].Source == "" {
			resources[i].Source = source
		}
	}
	return resources, nil
}

// resourcesFromTree converts the decoded shape shared by the YAML, JSON and TOML
// formats:
//
//	locale:
//	  Category:
//	    Kind:
//	      name: text
//	      description: {text: ..., draft: true}
func resourcesFromTree(tree map[string]any) ([]LocaleResource, error) {
	if len(tree) == 0 {
		return nil, fmt.Errorf("%w: no locales defined", ErrInvalidStructure)
	}

	resources := make([]LocaleResource, 0, len(tree))
	for locale, categories := range tree {
		catMap, ok := asMap(categories)
		if !ok {
			return nil, fmt.Errorf("%w: locale %q: expected map, got %T", ErrInvalidStructure, locale, categories)
		}

		res := LocaleResource{Locale: locale}
		for category, kinds := range catMap {
			kindMap, ok := asMap(kinds)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s: expected map, got %T", ErrInvalidStructure, locale, category, kinds)
			}
			for kind, fields := range kindMap {
				fieldMap, ok := asMap(fields)
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s.%s: expected map, got %T", ErrInvalidStructure, locale, category, kind, fields)
				}
				for name, value := range fieldMap {
					field, ok := ParseField(name)
					if !ok {
						return nil, fmt.Errorf("%w: %s.%s.%s: unknown field %q", ErrInvalidStructure, locale, category, kind, name)
					}
					text, completion, err := templateValue(value)
					if err != nil {
						return nil, fmt.Errorf("%w: %s.%s.%s.%s: %v", ErrInvalidStructure, locale, category, kind, name, err)
					}
					res.Records = append(res.Records, Record{
						Category:   Category(category),
						Kind:       Kind(kind),
						Field:      field,
						Completion: completion,
						Template:   text,
					})
				}
			}
		}
		sortRecords(res.Records)
		resources = append(resources, res)
	}

	slices.SortFunc(resources, func(a, b LocaleResource) int {
		return cmp.Compare(a.Locale, b.Locale)
	})
	return resources, nil
}

// templateValue accepts either a plain string (a finished translation) or a map
// with "text" and an optional boolean "draft".
func templateValue(v any) (string, Completion, error) {
	if s, ok := v.(string); ok {
		return s, Finished, nil
	}
	m, ok := asMap(v)
	if !ok {
		return "", Finished, fmt.Errorf("expected string or map, got %T", v)
	}
	text, ok := m["text"].(string)
	if !ok {
		return "", Finished, fmt.Errorf("missing string \"text\"")
	}
	completion := Finished
	switch draft := m["draft"].(type) {
	case nil:
	case bool:
		if draft {
			completion = Draft
		}
	default:
		return "", Finished, fmt.Errorf("\"draft\" must be a boolean, got %T", draft)
	}
	return text, completion, nil
}

// asMap normalizes decoded maps, including the map[any]any some decoders produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func sortRecords(records []Record) {
	slices.SortFunc(records, func(a, b Record) int {
		return cmp.Or(
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Field, b.Field),
		)
	})
}
