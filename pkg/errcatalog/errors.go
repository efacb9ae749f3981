package errcatalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Catalog validation
	ErrInvalidRecord        = errors.New("invalid catalog record")
	ErrDuplicateKey         = errors.New("duplicate catalog key")
	ErrMissingDefaultLocale = errors.New("default locale has no resources")
	ErrMissingFallback      = errors.New("missing fallback entry")
	ErrNoCatalog            = errors.New("store has no catalog to reload")

	// Resolution and formatting
	ErrUnknownCategory = errors.New("unknown error category")
	ErrMissingArgument = errors.New("template placeholder has no argument")

	// Parsing
	ErrParsingCancelled  = errors.New("resource parsing cancelled")
	ErrFailedToParseYAML = errors.New("failed to parse YAML resource")
	ErrFailedToParseJSON = errors.New("failed to parse JSON resource")
	ErrFailedToParseTOML = errors.New("failed to parse TOML resource")
	ErrFailedToParseTS   = errors.New("failed to parse TS resource")
	ErrInvalidStructure  = errors.New("invalid resource structure")

	// File and directory loading
	ErrNilAdapter                = errors.New("resource adapter is nil")
	ErrNoParser                  = errors.New("no parser for resource file")
	ErrEmptyResource             = errors.New("resource file is empty")
	ErrLoadingFileCancelled      = errors.New("loading resource file cancelled")
	ErrFailedToReadFile          = errors.New("failed to read resource file")
	ErrFailedToParseFile         = errors.New("failed to parse resource file")
	ErrFailedToAccessDirectory   = errors.New("failed to access resource directory")
	ErrLoadingDirectoryCancelled = errors.New("loading resource directory cancelled")
	ErrFailedToReadDirectory     = errors.New("failed to read resource directory")
	ErrNoResourceFiles           = errors.New("no resource files found")

	// Export
	ErrFailedToMarshalJSON = errors.New("failed to marshal entries to JSON")
)

// LoadReason classifies a LoadError.
type LoadReason uint8

const (
	ReasonInvalidRecord LoadReason = iota + 1
	ReasonDuplicateKey
	ReasonMissingDefaultLocale
	ReasonMissingFallback
)

func (r LoadReason) sentinel() error {
	switch r {
	case ReasonInvalidRecord:
		return ErrInvalidRecord
	case ReasonDuplicateKey:
		return ErrDuplicateKey
	case ReasonMissingDefaultLocale:
		return ErrMissingDefaultLocale
	case ReasonMissingFallback:
		return ErrMissingFallback
	}
	return nil
}

func (r LoadReason) String() string {
	if err := r.sentinel(); err != nil {
		return err.Error()
	}
	return "unknown load failure"
}

// LoadError reports every violation of one kind found while building a catalog.
// Keys names the offending templates, Details carries messages for violations
// that cannot be expressed as a key (malformed records).
type LoadError struct {
	Reason  LoadReason
	Keys    []EntryKey
	Details []string
}

func (e *LoadError) Error() string {
	parts := make([]string, 0, len(e.Keys)+len(e.Details))
	for _, k := range e.Keys {
		parts = append(parts, k.String())
	}
	parts = append(parts, e.Details...)
	if len(parts) == 0 {
		return "errcatalog: " + e.Reason.String()
	}
	return fmt.Sprintf("errcatalog: %s: %s", e.Reason, strings.Join(parts, "; "))
}

func (e *LoadError) Unwrap() error {
	return e.Reason.sentinel()
}

// FormatReason classifies a FormatError.
type FormatReason uint8

const (
	ReasonMissingArgument FormatReason = iota + 1
)

// FormatError reports a template that could not be rendered with the given arguments.
// It points at a data defect rather than a caller mistake.
type FormatError struct {
	Reason   FormatReason
	Template string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("errcatalog: %s: %q", ErrMissingArgument, e.Template)
}

func (e *FormatError) Unwrap() error {
	return ErrMissingArgument
}

// LocaleNotSupportedError indicates that no resource was loaded for the locale.
type LocaleNotSupportedError struct {
	Locale string
}

func (e *LocaleNotSupportedError) Error() string {
	return fmt.Sprintf("errcatalog: locale not supported: %s", e.Locale)
}
