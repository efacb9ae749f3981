// Package metrics exports error catalog resolution quality as Prometheus metrics.
//
// Every resolution is counted by category, match, completion and locale fallback,
// so localization debt (fallbacks to UnknownError, draft texts, untranslated
// locales) shows up on dashboards without log scraping.
//
// Label values never come straight from a request: kinds outside the declared
// table of their category are counted as "undeclared" and locales the catalog
// does not support as "unsupported", which keeps the number of series bounded.
package metrics

import (
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

const (
	Namespace = "errcatalog"

	labelCategory       = "category"
	labelMatch          = "match"
	labelCompletion     = "completion"
	labelLocaleFallback = "locale_fallback"
	labelKind           = "kind"
	labelLocale         = "locale"

	// UndeclaredKind replaces kinds the category does not declare.
	UndeclaredKind = "undeclared"
	// UnsupportedLocale replaces locales the catalog has no resources for.
	UnsupportedLocale = "unsupported"
)

// Observer counts resolutions. It implements errcatalog.QualityObserver.
type Observer struct {
	resolutions *prometheus.CounterVec
	degraded    *prometheus.CounterVec
	locales     atomic.Pointer[[]string]
}

var (
	_ errcatalog.QualityObserver = (*Observer)(nil)
	_ errcatalog.LocaleObserver  = (*Observer)(nil)
)

// NewObserver creates the counters and registers them with reg.
// It panics if the counters are already registered, like prometheus.MustRegister.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolutions_total",
			Help:      "Error messages resolved, by resolution quality",
		}, []string{labelCategory, labelMatch, labelCompletion, labelLocaleFallback}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "degraded_resolutions_total",
			Help:      "Error messages resolved with a fallback or a draft text, by requested kind and locale",
		}, []string{labelCategory, labelKind, labelLocale}),
	}
	reg.MustRegister(o.resolutions, o.degraded)
	return o
}

// ObserveResolution implements errcatalog.QualityObserver.
func (o *Observer) ObserveResolution(msg errcatalog.ResolvedMessage) {
	o.resolutions.WithLabelValues(
		string(msg.Key.Category),
		msg.Quality.Match.String(),
		msg.Quality.Completion.String(),
		strconv.FormatBool(msg.Quality.LocaleFallback),
	).Inc()

	if msg.Quality.Degraded() {
		o.degraded.WithLabelValues(string(msg.Key.Category), o.kindLabel(msg.Key), o.localeLabel(msg.Locale)).Inc()
	}
}

// ObserveLocales implements errcatalog.LocaleObserver. The catalog calls it on
// every load; until then every locale is reported as unsupported.
func (o *Observer) ObserveLocales(locales []string) {
	supported := slices.Clone(locales)
	o.locales.Store(&supported)
}

func (o *Observer) kindLabel(key errcatalog.Key) string {
	if key.Category.Declares(key.Kind) {
		return string(key.Kind)
	}
	return UndeclaredKind
}

func (o *Observer) localeLabel(locale string) string {
	if supported := o.locales.Load(); supported != nil && slices.Contains(*supported, locale) {
		return locale
	}
	return UnsupportedLocale
}
