package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/errcatalog/internal/config"
	"github.com/dmitrymomot/errcatalog/internal/logger"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/httpapi"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/locales"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog/s3source"
)

// app carries the state shared by all commands.
type app struct {
	envFiles      []string
	dir           string
	defaultLocale string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "errcatalog",
		Short:        "Inspect, validate and serve localized error catalogs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "load environment variables from these files instead of ./.env")
	flags.StringVar(&a.dir, "dir", "", "directory of resource files (overrides ERRCATALOG_DIR)")
	flags.StringVar(&a.defaultLocale, "default-locale", "", "default locale (overrides ERRCATALOG_DEFAULT_LOCALE)")

	root.AddCommand(
		newResolveCmd(a),
		newStatusCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}
	if a.dir != "" {
		cfg.Dir = a.dir
		cfg.S3.Bucket = ""
	}
	if a.defaultLocale != "" {
		cfg.DefaultLocale = a.defaultLocale
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithFormat(cfg.Log.LogFormat()),
		logger.WithLevel(cfg.Log.LogLevel()),
		logger.WithContextExtractors(httpapi.RequestIDExtractor),
	)
	return nil
}

// adapter selects the resource source: a directory, an S3 bucket or the
// embedded catalog. The returned description names it in logs.
func (a *app) adapter(ctx context.Context) (errcatalog.ResourceAdapter, string, error) {
	switch {
	case a.cfg.Dir != "":
		return errcatalog.NewDirectoryAdapter(a.cfg.Dir), a.cfg.Dir, nil
	case a.cfg.S3.Enabled():
		s3cfg := a.cfg.S3
		adapter, err := s3source.New(ctx, s3source.Config{
			Bucket:         s3cfg.Bucket,
			Region:         s3cfg.Region,
			Prefix:         s3cfg.Prefix,
			Endpoint:       s3cfg.Endpoint,
			AccessKeyID:    s3cfg.AccessKeyID,
			SecretKey:      s3cfg.SecretAccessKey,
			ForcePathStyle: s3cfg.ForcePathStyle,
		})
		if err != nil {
			return nil, "", err
		}
		return adapter, fmt.Sprintf("s3://%s/%s", s3cfg.Bucket, s3cfg.Prefix), nil
	default:
		return locales.Adapter(), "embedded", nil
	}
}

// load builds a catalog from the configured source.
func (a *app) load(ctx context.Context, opts ...errcatalog.Option) (*errcatalog.Catalog, errcatalog.ResourceAdapter, error) {
	adapter, source, err := a.adapter(ctx)
	if err != nil {
		return nil, nil, err
	}

	base := []errcatalog.Option{
		errcatalog.WithLogger(a.log),
		errcatalog.WithQualityLogging(a.cfg.Log.Quality),
	}
	catalog, err := errcatalog.LoadFrom(ctx, adapter, a.cfg.DefaultLocale, append(base, opts...)...)
	if err != nil {
		a.log.ErrorContext(ctx, "failed to load error catalog", logger.Source(source), logger.Error(err))
		return nil, nil, err
	}
	a.log.DebugContext(ctx, "error catalog loaded",
		logger.Source(source),
		logger.Locales(len(catalog.Locales()), catalog.DefaultLocale()),
	)
	return catalog, adapter, nil
}
