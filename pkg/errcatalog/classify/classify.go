// Package classify maps Go error values to error catalog keys, so that failures
// from the standard library and golang.org/x/oauth2 can be shown to users as
// localized messages.
//
// Classification only inspects error values with errors.As and errors.Is. It never
// retries, dials or parses anything.
//
//	msg, err := classify.Error(err).Resolve(catalog, "fr")
package classify

import (
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// Classification is the catalog key of an error together with the arguments for
// the placeholders of its name and description templates.
type Classification struct {
	Key             errcatalog.Key
	NameArgs        []any
	DescriptionArgs []any
}

// Resolve resolves the classified error in the catalog.
func (c Classification) Resolve(catalog *errcatalog.Catalog, locale string) (errcatalog.ResolvedMessage, error) {
	return catalog.ResolveFields(c.Key.Category, c.Key.Kind, locale, c.NameArgs, c.DescriptionArgs)
}

// Err resolves the classified error and returns it as an error value.
func (c Classification) Err(catalog *errcatalog.Catalog, locale string) *errcatalog.Error {
	msg, _ := c.Resolve(catalog, locale)
	return &errcatalog.Error{ResolvedMessage: msg}
}

func classification(category errcatalog.Category, kind errcatalog.Kind, args ...any) Classification {
	return Classification{
		Key:             errcatalog.NewKey(category, kind),
		NameArgs:        args,
		DescriptionArgs: args,
	}
}

// Error classifies err. OAuth2, TLS and certificate errors take precedence over the
// network errors they are usually wrapped in. Anything unrecognised becomes an
// ApplicationError UnknownError carrying the error text, and a nil error is NoError.
func Error(err error) Classification {
	if err == nil {
		return classification(errcatalog.CategoryApplication, errcatalog.KindNoError)
	}

	for _, classify := range []func(error) (Classification, bool){
		OAuth2,
		TLS,
		Network,
		JSON,
	} {
		if c, ok := classify(err); ok {
			return c
		}
	}
	return classification(errcatalog.CategoryApplication, errcatalog.KindUnknownError, err.Error())
}
