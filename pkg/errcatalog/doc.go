// Package errcatalog provides a localized catalog of error messages. Given an error
// category, a kind within that category and a locale, it resolves a short Name and a
// longer Description, falling back gracefully when a translation is missing or still
// a draft.
//
// The package allows you to:
//
//   - Build an immutable Catalog from decoded locale resources with strict validation
//     of duplicate keys and structural fallbacks.
//   - Resolve messages through a fixed fallback chain and get a Quality signal that
//     reports fallbacks and draft translations without failing the call.
//   - Substitute the single %1 placeholder of a template with a diagnostic value.
//   - Load resources from YAML, JSON, TOML or Qt Linguist TS files, from a directory,
//     an embed.FS or any custom storage implementing ResourceAdapter.
//   - Swap catalogs atomically on reload through a Store.
//   - Report per-locale translation coverage and export templates as JSON.
//
// # Architecture
//
// Categories form a closed set (ApplicationError, ServerError, OAuth2Error,
// NetworkError, SSLNetworkError, JSONError). Every category declares a NoError and an
// UnknownError kind, and every loaded locale must define both for every category.
// This is what guarantees that resolution always succeeds:
//
//	(kind, locale) -> (kind, default locale) -> (UnknownError, locale) -> (UnknownError, default locale)
//
// Each field walks the chain on its own, so a locale may translate only the Name of a
// kind. A Catalog is never mutated after Load and needs no locking.
//
// # Usage
//
//	catalog, err := errcatalog.LoadFrom(ctx, errcatalog.NewDirectoryAdapter("./locales"), "en",
//		errcatalog.WithLogger(logger),
//		errcatalog.WithQualityLogging(true),
//	)
//	if err != nil {
//		log.Fatalf("failed to load error catalog: %v", err)
//	}
//
//	msg, err := catalog.Resolve(errcatalog.CategoryNetwork, errcatalog.KindHostNotFoundError, "fr")
//	// msg.Name == "Hôte introuvable", msg.Quality.Degraded() == false
//
// Unresolvable kinds fall back to UnknownError and receive the kind as diagnostic:
//
//	msg, _ = catalog.Resolve(errcatalog.CategoryJSON, "Trailing", "en")
//	// msg.Description == "An unknown JSON error has occurred (internal error code: Trailing)"
//
// # Related packages
//
//   - locales embeds the default English catalog and its translations.
//   - classify maps Go error values (net, crypto/tls, encoding/json, oauth2, HTTP
//     statuses) to catalog keys.
//   - s3source loads resources from an S3 bucket.
//   - httpapi serves a catalog over HTTP, metrics exports resolution quality to Prometheus.
//
// # Error Handling
//
// Load returns a *LoadError listing every offending key of the first failed check.
// Use errors.Is with ErrDuplicateKey, ErrMissingFallback, ErrInvalidRecord or
// ErrMissingDefaultLocale to branch on the reason. Resolve only fails with
// ErrUnknownCategory or a *FormatError; a missing translation is never an error.
package errcatalog
