package errcatalog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExact(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "en")
	require.NoError(t, err)
	assert.Equal(t, "Host Not Found Error", msg.Name)
	assert.Equal(t, "The remote host name was not found (invalid hostname)", msg.Description)
	assert.Equal(t, errcatalog.Quality{Match: errcatalog.MatchExact, Completion: errcatalog.Finished}, msg.Quality)
	assert.False(t, msg.Quality.Degraded())
	assert.Equal(t, "en", msg.Locale)
	assert.Equal(t, errcatalog.NewKey(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError), msg.Key)

	msg, err = c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Hôte introuvable", msg.Name)
	assert.False(t, msg.Quality.Degraded())
}

func TestResolveEveryDefaultLocaleEntryIsExact(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)
	for _, entry := range c.Entries(c.DefaultLocale()) {
		msg, err := c.Resolve(entry.Key.Category, entry.Key.Kind, c.DefaultLocale(), 1)
		require.NoError(t, err, entry.Key.String())
		assert.Equal(t, errcatalog.MatchExact, msg.Quality.Match, entry.Key.String())
		assert.False(t, msg.Quality.LocaleFallback, entry.Key.String())
	}
}

func TestResolveUnknownErrorSubstitutesCode(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)
	for _, locale := range []string{"en", "fr", "de"} {
		for _, category := range errcatalog.Categories() {
			msg, err := c.Resolve(category, errcatalog.KindUnknownError, locale, 1234)
			require.NoError(t, err)
			assert.Contains(t, msg.Description, "1234", "%s/%s", category, locale)
			assert.Equal(t, errcatalog.MatchExact, msg.Quality.Match)
		}
	}
}

func TestResolveFallsBackToDefaultLocaleBeforeUnknown(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	// fr has no BadRequest; the en entry for the same kind wins over fr UnknownError.
	msg, err := c.Resolve(errcatalog.CategoryServer, errcatalog.KindBadRequest, "fr", "Missing parameter")
	require.NoError(t, err)
	assert.Equal(t, "Missing parameter", msg.Name)
	assert.Equal(t, "Missing parameter", msg.Description)
	assert.Equal(t, "fr", msg.Locale)
	assert.Equal(t, errcatalog.MatchExact, msg.Quality.Match)
	assert.True(t, msg.Quality.LocaleFallback)
	assert.True(t, msg.Quality.Degraded())
}

func TestResolveFallsBackPerField(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindTimeoutError, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Délai dépassé", msg.Name)
	assert.Equal(t, "The connection timed out", msg.Description)
	assert.Equal(t, errcatalog.MatchExact, msg.Quality.Match)
	assert.True(t, msg.Quality.LocaleFallback)
}

func TestResolveFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	t.Run("in requested locale", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Resolve(errcatalog.CategoryJSON, errcatalog.KindDeepNesting, "fr")
		require.NoError(t, err)
		assert.Equal(t, "fr unknown JSONError", msg.Name)
		assert.Equal(t, "fr unknown JSONError (code: DeepNesting)", msg.Description)
		assert.Equal(t, errcatalog.MatchFallbackToUnknown, msg.Quality.Match)
		assert.False(t, msg.Quality.LocaleFallback)
		assert.Equal(t, errcatalog.NewKey(errcatalog.CategoryJSON, errcatalog.KindDeepNesting), msg.Key)
	})

	t.Run("caller argument wins over kind", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Resolve(errcatalog.CategoryJSON, errcatalog.KindDeepNesting, "en", 7)
		require.NoError(t, err)
		assert.Equal(t, "en unknown JSONError (code: 7)", msg.Description)
	})

	t.Run("in default locale", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindProxyTimeoutError, "de")
		require.NoError(t, err)
		assert.Equal(t, "en unknown NetworkError", msg.Name)
		assert.Equal(t, "de", msg.Locale)
		assert.Equal(t, errcatalog.MatchFallbackToUnknown, msg.Quality.Match)
		assert.True(t, msg.Quality.LocaleFallback)
	})
}

func TestResolveReportsDraft(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Connexion refusée", msg.Name)
	assert.Equal(t, errcatalog.Draft, msg.Quality.Completion)
	assert.Equal(t, errcatalog.MatchExact, msg.Quality.Match)
	assert.True(t, msg.Quality.Degraded())
}

func TestResolveFields(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	msg, err := c.ResolveFields(errcatalog.CategoryServer, errcatalog.KindBadRequest, "en",
		[]any{"invalid_email"}, []any{"The email address is malformed"})
	require.NoError(t, err)
	assert.Equal(t, "invalid_email", msg.Name)
	assert.Equal(t, "The email address is malformed", msg.Description)
}

func TestResolveMissingArgument(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	msg, err := c.Resolve(errcatalog.CategoryServer, errcatalog.KindUnknownError, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcatalog.ErrMissingArgument))
	assert.Equal(t, "en unknown ServerError", msg.Name)
	assert.Equal(t, "en unknown ServerError (code: %1)", msg.Description)

	_, err = c.ResolveFields(errcatalog.CategoryServer, errcatalog.KindBadRequest, "en", []any{"name"}, nil)
	require.Error(t, err)
	var formatErr *errcatalog.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "%1", formatErr.Template)
}

func TestResolveLocales(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	t.Run("empty locale uses default", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "")
		require.NoError(t, err)
		assert.Equal(t, "en", msg.Locale)
		assert.Equal(t, "Host Not Found Error", msg.Name)
		assert.False(t, msg.Quality.LocaleFallback)
	})

	t.Run("malformed locale uses default", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "@@")
		require.NoError(t, err)
		assert.Equal(t, "en", msg.Locale)
		assert.Equal(t, "Host Not Found Error", msg.Name)
		assert.True(t, msg.Quality.LocaleFallback)
	})

	t.Run("locale is canonicalized", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "FR")
		require.NoError(t, err)
		assert.Equal(t, "fr", msg.Locale)
		assert.Equal(t, "Hôte introuvable", msg.Name)
	})
}

func TestResolveUnknownCategory(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	_, err := c.Resolve("HTTPError", errcatalog.KindNoError, "en")
	assert.ErrorIs(t, err, errcatalog.ErrUnknownCategory)
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	first, err1 := c.Resolve(errcatalog.CategoryJSON, errcatalog.KindUnknownError, "fr", 7)
	second, err2 := c.Resolve(errcatalog.CategoryJSON, errcatalog.KindUnknownError, "fr", 7)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestResolveConcurrent(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locale := []string{"en", "fr", "de"}[i%3]
			msg, err := c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, locale)
			assert.NoError(t, err)
			assert.NotEmpty(t, msg.Name)
		}()
	}
	wg.Wait()
}

func TestResolveObserver(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	c := loadTestCatalog(t, errcatalog.WithObserver(observer), errcatalog.WithObserver(nil))

	_, _ = c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "en")
	_, _ = c.Resolve(errcatalog.CategoryJSON, errcatalog.KindDeepNesting, "fr")

	require.Equal(t, 2, observer.count())
	assert.False(t, observer.msgs[0].Quality.Degraded())
	assert.Equal(t, errcatalog.MatchFallbackToUnknown, observer.msgs[1].Quality.Match)
}

func TestResolveQualityLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := loadTestCatalog(t, errcatalog.WithLogger(logger), errcatalog.WithQualityLogging(true))
	buf.Reset()

	_, _ = c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "en")
	assert.Empty(t, buf.String())

	_, _ = c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, "fr")
	out := buf.String()
	assert.Contains(t, out, "degraded error message")
	assert.Contains(t, out, "key=NetworkError.ConnectionRefusedError")
	assert.Contains(t, out, "completion=draft")

	t.Run("disabled by default", func(t *testing.T) {
		var buf bytes.Buffer
		c := loadTestCatalog(t, errcatalog.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		buf.Reset()
		_, _ = c.Resolve(errcatalog.CategoryNetwork, errcatalog.KindConnectionRefusedError, "fr")
		assert.Empty(t, buf.String())
	})
}

func TestMessage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := loadTestCatalog(t, errcatalog.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	msg := c.Message(errcatalog.CategoryApplication, errcatalog.KindUnknownError, "en")
	assert.Equal(t, "en unknown ApplicationError (code: %1)", msg.Description)
	assert.Contains(t, buf.String(), "error message resolution failed")
}

func TestErr(t *testing.T) {
	t.Parallel()

	c := loadTestCatalog(t)

	var err error = c.Err(errcatalog.CategoryNetwork, errcatalog.KindTimeoutError, "en")
	assert.Equal(t, "Timeout Error: The connection timed out", err.Error())

	var catalogErr *errcatalog.Error
	require.ErrorAs(t, err, &catalogErr)
	assert.Equal(t, errcatalog.KindTimeoutError, catalogErr.Key.Kind)
	assert.True(t, strings.HasPrefix(catalogErr.Name, "Timeout"))
}

func TestMatchAndCompletionText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exact", errcatalog.MatchExact.String())
	assert.Equal(t, "fallback_to_unknown", errcatalog.MatchFallbackToUnknown.String())
	assert.Equal(t, "finished", errcatalog.Finished.String())
	assert.Equal(t, "draft", errcatalog.Draft.String())
}
