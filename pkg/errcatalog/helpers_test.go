package errcatalog_test

import (
	"sync"
	"testing"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"

	"github.com/stretchr/testify/require"
)

func rec(c errcatalog.Category, k errcatalog.Kind, f errcatalog.Field, text string) errcatalog.Record {
	return errcatalog.Record{Category: c, Kind: k, Field: f, Template: text}
}

func draftRec(c errcatalog.Category, k errcatalog.Kind, f errcatalog.Field, text string) errcatalog.Record {
	r := rec(c, k, f, text)
	r.Completion = errcatalog.Draft
	return r
}

// fallbackRecords returns the NoError and UnknownError entries every locale needs.
func fallbackRecords(prefix string) []errcatalog.Record {
	var out []errcatalog.Record
	for _, c := range errcatalog.Categories() {
		out = append(out,
			rec(c, errcatalog.KindNoError, errcatalog.FieldName, prefix+" no error"),
			rec(c, errcatalog.KindNoError, errcatalog.FieldDescription, prefix+" nothing happened"),
			rec(c, errcatalog.KindUnknownError, errcatalog.FieldName, prefix+" unknown "+string(c)),
			rec(c, errcatalog.KindUnknownError, errcatalog.FieldDescription, prefix+" unknown "+string(c)+" (code: %1)"),
		)
	}
	return out
}

func resource(locale string, records ...errcatalog.Record) errcatalog.LocaleResource {
	prefix := locale
	return errcatalog.LocaleResource{
		Locale:  locale,
		Source:  locale + ".test",
		Records: append(fallbackRecords(prefix), records...),
	}
}

// testResources is a two-locale data set:
//   - en defines HostNotFoundError, TimeoutError and BadRequest;
//   - fr translates HostNotFoundError, only the Name of TimeoutError and has a draft ConnectionRefusedError.
func testResources() []errcatalog.LocaleResource {
	return []errcatalog.LocaleResource{
		resource("en",
			rec(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, errcatalog.FieldName, "Host Not Found Error"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, errcatalog.FieldDescription, "The remote host name was not found (invalid hostname)"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindTimeoutError, errcatalog.FieldName, "Timeout Error"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindTimeoutError, errcatalog.FieldDescription, "The connection timed out"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, errcatalog.FieldName, "Connection Refused Error"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, errcatalog.FieldDescription, "The connection was refused"),
			rec(errcatalog.CategoryServer, errcatalog.KindBadRequest, errcatalog.FieldName, "%1"),
			rec(errcatalog.CategoryServer, errcatalog.KindBadRequest, errcatalog.FieldDescription, "%1"),
		),
		resource("fr",
			rec(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, errcatalog.FieldName, "Hôte introuvable"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, errcatalog.FieldDescription, "Le nom d'hôte est introuvable"),
			rec(errcatalog.CategoryNetwork, errcatalog.KindTimeoutError, errcatalog.FieldName, "Délai dépassé"),
			draftRec(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, errcatalog.FieldName, "Connexion refusée"),
			draftRec(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, errcatalog.FieldDescription, "La connexion a été refusée"),
		),
	}
}

func loadTestCatalog(t testing.TB, opts ...errcatalog.Option) *errcatalog.Catalog {
	t.Helper()
	c, err := errcatalog.Load(testResources(), "en", opts...)
	require.NoError(t, err)
	return c
}

type recordingObserver struct {
	mu      sync.Mutex
	msgs    []errcatalog.ResolvedMessage
	locales [][]string
}

func (o *recordingObserver) ObserveLocales(locales []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.locales = append(o.locales, locales)
}

func (o *recordingObserver) ObserveResolution(msg errcatalog.ResolvedMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.msgs)
}
