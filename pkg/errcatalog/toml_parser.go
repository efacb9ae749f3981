package errcatalog

import (
	"context"
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLParser implements the Parser interface for TOML files.
// Locales and categories are tables:
//
//	[en.NetworkError.TimeoutError]
//	name = "Timeout Error"
//	description = { text = "The connection timed out", draft = true }
type TOMLParser struct{}

// NewTOMLParser creates a new TOMLParser instance
func NewTOMLParser() *TOMLParser {
	return &TOMLParser{}
}

// Parse parses TOML content into one resource per top-level locale table.
func (p *TOMLParser) Parse(ctx context.Context, content []byte) ([]LocaleResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseTOML, err)
	}

	return resourcesFromTree(data)
}

// SupportsFileExtension checks if the parser supports the given file extension
func (p *TOMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "toml")
}
