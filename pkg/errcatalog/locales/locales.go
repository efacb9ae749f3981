// Package locales embeds the default error catalog resources: the English source
// locale and its translations.
package locales

import (
	"context"
	"embed"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// DefaultLocale is the source locale of the embedded resources.
const DefaultLocale = "en"

//go:embed *.yaml
var files embed.FS

// FS returns the embedded resource files.
func FS() embed.FS {
	return files
}

// Adapter returns a resource adapter over the embedded files.
func Adapter() errcatalog.ResourceAdapter {
	return errcatalog.NewFSAdapter(files, ".", errcatalog.NewYAMLParser())
}

// Load builds a catalog from the embedded resources with DefaultLocale as the
// default locale.
func Load(ctx context.Context, opts ...errcatalog.Option) (*errcatalog.Catalog, error) {
	return errcatalog.LoadFrom(ctx, Adapter(), DefaultLocale, opts...)
}
