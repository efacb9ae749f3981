package errcatalog

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// TSParser implements the Parser interface for Qt Linguist translation sources.
// Each <context> names a category and each message source is "Kind:Field":
//
//	<TS version="2.1" language="en">
//	<context>
//	    <name>NetworkError</name>
//	    <message>
//	        <source>TimeoutError:Name</source>
//	        <translation type="unfinished">Timeout Error</translation>
//	    </message>
//	</context>
//	</TS>
//
// Unfinished translations become drafts; obsolete and vanished ones are dropped,
// as are empty translations.
type TSParser struct{}

type tsDocument struct {
	XMLName  xml.Name    `xml:"TS"`
	Language string      `xml:"language,attr"`
	Contexts []tsContext `xml:"context"`
}

type tsContext struct {
	Name     string      `xml:"name"`
	Messages []tsMessage `xml:"message"`
}

type tsMessage struct {
	Source      string        `xml:"source"`
	Translation tsTranslation `xml:"translation"`
}

type tsTranslation struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// NewTSParser creates a new TSParser instance
func NewTSParser() *TSParser {
	return &TSParser{}
}

// Parse parses a TS document into a single resource for its language attribute.
func (p *TSParser) Parse(ctx context.Context, content []byte) ([]LocaleResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var doc tsDocument
	if err := xml.NewDecoder(bytes.NewReader(content)).Decode(&doc); err != nil {
		return nil, errors.Join(ErrFailedToParseTS, err)
	}
	if strings.TrimSpace(doc.Language) == "" {
		return nil, fmt.Errorf("%w: TS document has no language attribute", ErrInvalidStructure)
	}

	res := LocaleResource{Locale: doc.Language}
	for _, c := range doc.Contexts {
		category := strings.TrimSpace(c.Name)
		for _, m := range c.Messages {
			switch m.Translation.Type {
			case "obsolete", "vanished":
				continue
			}
			text := m.Translation.Text
			if strings.TrimSpace(text) == "" {
				continue
			}

			source := strings.TrimSpace(m.Source)
			i := strings.LastIndexByte(source, ':')
			if i <= 0 {
				return nil, fmt.Errorf("%w: %s: message source %q is not Kind:Field", ErrInvalidStructure, category, source)
			}
			field, ok := ParseField(source[i+1:])
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown field in %q", ErrInvalidStructure, category, source)
			}

			completion := Finished
			if m.Translation.Type == "unfinished" {
				completion = Draft
			}
			res.Records = append(res.Records, Record{
				Category:   Category(category),
				Kind:       Kind(source[:i]),
				Field:      field,
				Completion: completion,
				Template:   text,
			})
		}
	}

	sortRecords(res.Records)
	return []LocaleResource{res}, nil
}

// SupportsFileExtension checks if the parser supports the given file extension
func (p *TSParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "ts")
}
