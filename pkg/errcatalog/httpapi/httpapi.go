// Package httpapi serves an error catalog over HTTP for clients that render
// error messages themselves.
//
// Routes:
//
//	GET /health                                    readiness of the catalog
//	GET /locales                                   supported locales and the default
//	GET /locales/{locale}                          raw templates of a locale
//	GET /locales/{locale}/{category}/{kind}        resolved message with quality
//	GET /coverage                                  translation coverage per locale
//
// The resolve route takes the template arguments from the repeated query
// parameter "arg". "name_arg" and "description_arg" override them per field,
// e.g. for a server supplied error name and description.
//
// The locale is taken from the path only. A locale without resources is not an
// error for the resolve route: the message falls back to the default locale and
// the quality reports it.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// CatalogSource returns the catalog to serve. *errcatalog.Store implements it,
// so a reloaded catalog is picked up by the next request.
type CatalogSource interface {
	Catalog() *errcatalog.Catalog
}

// Option configures the handler.
type Option func(*handler)

// WithLogger sets the logger for request failures. Default discards logs.
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMiddleware adds chi middlewares in front of every route.
func WithMiddleware(middlewares ...func(http.Handler) http.Handler) Option {
	return func(h *handler) {
		h.middlewares = append(h.middlewares, middlewares...)
	}
}

type handler struct {
	source      CatalogSource
	logger      *slog.Logger
	middlewares []func(http.Handler) http.Handler
}

type localesResponse struct {
	Default string   `json:"default"`
	Locales []string `json:"locales"`
}

// NewHandler returns the router of the catalog API.
func NewHandler(source CatalogSource, opts ...Option) http.Handler {
	h := &handler{
		source: source,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(h.middlewares...)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.render(r, writeError(w, ErrNotFound, "", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.render(r, writeError(w, ErrMethodNotAllowed, "", nil))
	})

	r.Get("/health", h.health)
	r.Get("/coverage", h.withCatalog(h.coverage))
	r.Route("/locales", func(r chi.Router) {
		r.Get("/", h.withCatalog(h.locales))
		r.Get("/{locale}", h.withCatalog(h.export))
		r.Get("/{locale}/{category}/{kind}", h.withCatalog(h.resolve))
	})
	return r
}

type catalogHandlerFunc func(w http.ResponseWriter, r *http.Request, catalog *errcatalog.Catalog) error

func (h *handler) withCatalog(next catalogHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := h.source.Catalog()
		if catalog == nil {
			h.render(r, writeError(w, ErrServiceUnavailable, "error catalog is not loaded", nil))
			return
		}
		h.render(r, next(w, r, catalog))
	}
}

// render logs a response that could not be written.
func (h *handler) render(r *http.Request, err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response",
			"path", r.URL.Path,
			"error", err,
		)
	}
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.source.Catalog() == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("NOT_READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

func (h *handler) locales(w http.ResponseWriter, _ *http.Request, catalog *errcatalog.Catalog) error {
	return writeJSON(w, http.StatusOK, Response{Data: localesResponse{
		Default: catalog.DefaultLocale(),
		Locales: catalog.Locales(),
	}})
}

func (h *handler) export(w http.ResponseWriter, r *http.Request, catalog *errcatalog.Catalog) error {
	locale := chi.URLParam(r, "locale")
	data, err := catalog.ExportJSON(locale)
	if err != nil {
		var notSupported *errcatalog.LocaleNotSupportedError
		if errors.As(err, &notSupported) {
			return writeError(w, ErrLocaleNotSupported, err.Error(), nil)
		}
		h.logger.ErrorContext(r.Context(), "failed to export locale", "locale", locale, "error", err)
		return writeError(w, ErrInternalServerError, "", nil)
	}
	return writeJSON(w, http.StatusOK, Response{
		Data: json.RawMessage(data),
		Meta: map[string]any{"locale": locale},
	})
}

func (h *handler) resolve(w http.ResponseWriter, r *http.Request, catalog *errcatalog.Catalog) error {
	category := errcatalog.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		return writeError(w, ErrUnknownCategory, "unknown error category: "+string(category), nil)
	}
	kind := errcatalog.Kind(chi.URLParam(r, "kind"))

	query := r.URL.Query()
	nameArgs := queryArgs(query, "name_arg")
	descriptionArgs := queryArgs(query, "description_arg")
	if args := queryArgs(query, "arg"); len(args) > 0 {
		if nameArgs == nil {
			nameArgs = args
		}
		if descriptionArgs == nil {
			descriptionArgs = args
		}
	}

	msg, err := catalog.ResolveFields(category, kind, chi.URLParam(r, "locale"), nameArgs, descriptionArgs)
	if err != nil {
		if errors.Is(err, errcatalog.ErrMissingArgument) {
			h.logger.WarnContext(r.Context(), "error message template could not be formatted",
				"category", category,
				"kind", kind,
				"locale", msg.Locale,
				"error", err,
			)
			return writeError(w, ErrFormat, err.Error(), msg)
		}
		return writeError(w, ErrInternalServerError, "", nil)
	}
	return writeJSON(w, http.StatusOK, Response{Data: msg})
}

func (h *handler) coverage(w http.ResponseWriter, _ *http.Request, catalog *errcatalog.Catalog) error {
	return writeJSON(w, http.StatusOK, Response{Data: catalog.Coverage()})
}

func queryArgs(query map[string][]string, name string) []any {
	values, ok := query[name]
	if !ok {
		return nil
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
