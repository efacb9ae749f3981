// Command errcatalog inspects, validates and serves localized error catalogs.
//
//	errcatalog resolve NetworkError HostNotFoundError --locale fr
//	errcatalog status --json
//	errcatalog export fr
//	errcatalog validate --dir ./translations
//	errcatalog serve
//
// Resources come from --dir (ERRCATALOG_DIR), an S3 bucket (ERRCATALOG_S3_*)
// or, when neither is configured, the embedded default catalog.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
