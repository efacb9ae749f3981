package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/locales"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/metrics"
)

const testdataDir = "../../pkg/errcatalog/testdata/catalog"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestResolveCommand(t *testing.T) {
	t.Parallel()

	t.Run("embedded catalog", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "resolve", "NetworkError", "HostNotFoundError")
		require.NoError(t, err)
		assert.Equal(t, "Host Not Found Error\nThe remote host name was not found (invalid hostname)\n", out)
	})

	t.Run("translation", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "resolve", "NetworkError", "HostNotFoundError", "--locale", "fr")
		require.NoError(t, err)
		assert.Contains(t, out, "Hôte introuvable")
	})

	t.Run("arguments and quality", func(t *testing.T) {
		t.Parallel()
		out, errOut, err := run(t, "resolve", "JSONError", "NotAKind")
		require.NoError(t, err)
		assert.Contains(t, out, "NotAKind")
		assert.Contains(t, errOut, "match=fallback_to_unknown")
	})

	t.Run("field arguments as JSON", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "resolve", "ServerError", "BadRequest",
			"--name-arg", "Quota", "--description-arg", "Quota exceeded", "--json")
		require.NoError(t, err)

		var msg struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &msg))
		assert.Equal(t, "Quota", msg.Name)
		assert.Equal(t, "Quota exceeded", msg.Description)
	})

	t.Run("missing argument", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "resolve", "ServerError", "BadRequest")
		assert.ErrorIs(t, err, errcatalog.ErrMissingArgument)
		assert.Contains(t, out, "%1")
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		_, _, err := run(t, "resolve", "DatabaseError", "Timeout")
		assert.ErrorIs(t, err, errcatalog.ErrUnknownCategory)
	})

	t.Run("directory source", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "resolve", "NetworkError", "HostNotFoundError", "--dir", testdataDir, "--locale", "de_DE")
		require.NoError(t, err)
		assert.Contains(t, out, "Host nicht gefunden")
	})
}

func TestStatusCommand(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "status", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "LOCALE")
		assert.Contains(t, out, "en (default)")
		assert.Contains(t, out, "missing (NetworkError, RemoteHostClosedError, fr, Name)")
		assert.Contains(t, out, "draft   (OAuth2Error, EmptyToken, en, Name)")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "status", "--json")
		require.NoError(t, err)

		var report []errcatalog.LocaleCoverage
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		require.Len(t, report, 2)
		assert.Equal(t, "en", report[0].Locale)
		assert.Equal(t, 2, report[0].Draft)
	})
}

func TestExportCommand(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "export", "fr")
	require.NoError(t, err)

	var doc map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Hôte introuvable", doc["NetworkError"]["HostNotFoundError"]["name"])

	_, _, err = run(t, "export", "de")
	var notSupported *errcatalog.LocaleNotSupportedError
	assert.ErrorAs(t, err, &notSupported)
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		out, _, err := run(t, "validate", "--dir", testdataDir)
		require.NoError(t, err)
		assert.Contains(t, out, "ok: 2 locales")
	})

	t.Run("missing fallbacks", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(`
en:
  NetworkError:
    TimeoutError:
      name: Timeout
      description: Timed out
`), 0o600))

		_, errOut, err := run(t, "validate", "--dir", dir)
		assert.ErrorIs(t, err, errcatalog.ErrMissingFallback)
		assert.Contains(t, errOut, "(ApplicationError, NoError, en, Name)")
	})

	t.Run("malformed resource", func(t *testing.T) {
		t.Parallel()
		_, _, err := run(t, "validate", "--dir", "../../pkg/errcatalog/testdata/broken")
		assert.Error(t, err)
	})

	t.Run("default locale without resources", func(t *testing.T) {
		t.Parallel()
		_, _, err := run(t, "validate", "--default-locale", "de")
		assert.ErrorIs(t, err, errcatalog.ErrMissingDefaultLocale)
	})
}

func TestServeRouter(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	observer := metrics.NewObserver(registry)
	catalog, err := locales.Load(context.Background(), errcatalog.WithObserver(observer))
	require.NoError(t, err)

	a := &app{}
	require.NoError(t, a.init(newRootCmd()))
	h := newRouter(errcatalog.NewStore(catalog), registry, a)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locales/fr/NetworkError/TimeoutError", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	for i := range 50 {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/locales/de/NetworkError/junk%d", i), nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `errcatalog_resolutions_total{category="NetworkError",completion="finished",locale_fallback="false",match="exact"} 1`)
	assert.NotContains(t, body, "junk")
	assert.Contains(t, body, `errcatalog_degraded_resolutions_total{category="NetworkError",kind="undeclared",locale="unsupported"} 50`)
}
