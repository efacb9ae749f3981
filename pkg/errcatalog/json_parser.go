package errcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

// NewJSONParser creates a new JSONParser instance
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse parses JSON content into one resource per top-level locale key.
// An object that repeats a key is rejected.
func (p *JSONParser) Parse(ctx context.Context, content []byte) ([]LocaleResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	value, err := decodeJSONValue(dec, "")
	if err != nil {
		if errors.Is(err, ErrInvalidStructure) {
			return nil, err
		}
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFailedToParseJSON, errors.New("unexpected data after top-level value"))
	}

	var data map[string]any
	switch v := value.(type) {
	case map[string]any:
		data = v
	case nil:
	default:
		return nil, fmt.Errorf("%w: expected object at top level, got %T", ErrFailedToParseJSON, value)
	}

	return resourcesFromTree(data)
}

// SupportsFileExtension checks if the parser supports the given file extension
func (p *JSONParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "json")
}

// decodeJSONValue reads one value from the token stream into the same generic
// shape json.Unmarshal produces.
func decodeJSONValue(dec *json.Decoder, path string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := make(map[string]any)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			keyPath := key
			if path != "" {
				keyPath = path + "." + key
			}
			if _, dup := obj[key]; dup {
				return nil, fmt.Errorf("%w: key %q is defined more than once", ErrInvalidStructure, keyPath)
			}
			v, err := decodeJSONValue(dec, keyPath)
			if err != nil {
				return nil, err
			}
			obj[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeJSONValue(dec, path)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}
