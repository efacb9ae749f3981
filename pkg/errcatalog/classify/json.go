package classify

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// jsonSyntaxKinds maps fragments of encoding/json syntax error messages to kinds,
// most specific first.
var jsonSyntaxKinds = []struct {
	fragment string
	kind     errcatalog.Kind
}{
	{"exceeded max depth", errcatalog.KindDeepNesting},
	{"in string escape code", errcatalog.KindIllegalEscapeSequence},
	{"in \\u hexadecimal character escape", errcatalog.KindIllegalEscapeSequence},
	{"in string literal", errcatalog.KindUnterminatedString},
	{"numeric literal", errcatalog.KindIllegalNumber},
	{"after object key:value pair", errcatalog.KindMissingValueSeparator},
	{"after object key", errcatalog.KindMissingNameSeparator},
	{"after array element", errcatalog.KindMissingValueSeparator},
	{"looking for beginning of object key string", errcatalog.KindMissingObject},
	{"unexpected end of JSON input", errcatalog.KindUnterminatedObject},
	{"looking for beginning of value", errcatalog.KindIllegalValue},
	{"after top-level value", errcatalog.KindIllegalValue},
}

// JSON classifies encoding/json decoding errors. A truncated stream reported as
// io.ErrUnexpectedEOF is an unterminated document. Unrecognised syntax errors are
// UnknownError with the byte offset as diagnostic.
func JSON(err error) (Classification, bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		msg := syntaxErr.Error()
		for _, m := range jsonSyntaxKinds {
			if strings.Contains(msg, m.fragment) {
				return classification(errcatalog.CategoryJSON, m.kind), true
			}
		}
		return classification(errcatalog.CategoryJSON, errcatalog.KindUnknownError, syntaxErr.Offset), true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return classification(errcatalog.CategoryJSON, errcatalog.KindIllegalValue), true
	}

	var invalidErr *json.InvalidUnmarshalError
	if errors.As(err, &invalidErr) {
		return classification(errcatalog.CategoryJSON, errcatalog.KindUnknownError, invalidErr.Error()), true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return classification(errcatalog.CategoryJSON, errcatalog.KindUnterminatedObject), true
	}
	return Classification{}, false
}
