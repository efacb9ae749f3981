package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report every defect",
		Long: `Validate loads the configured resources exactly like the other commands and
exits non-zero when the catalog cannot be built. Every offending template of a
load error is listed on its own line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, _, err := a.load(cmd.Context())
			if err != nil {
				var loadErr *errcatalog.LoadError
				if errors.As(err, &loadErr) {
					out := cmd.ErrOrStderr()
					fmt.Fprintf(out, "%s:\n", loadErr.Reason)
					for _, k := range loadErr.Keys {
						fmt.Fprintf(out, "  %s\n", k)
					}
					for _, d := range loadErr.Details {
						fmt.Fprintf(out, "  %s\n", d)
					}
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d locales %v, default %s\n",
				len(catalog.Locales()), catalog.Locales(), catalog.DefaultLocale())
			return nil
		},
	}
}
