package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "export <locale>",
		Short: "Print the raw templates of a locale as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			data, err := catalog.ExportJSON(args[0])
			if err != nil {
				return err
			}
			if !compact {
				var buf bytes.Buffer
				if err := json.Indent(&buf, data, "", "  "); err != nil {
					return err
				}
				data = buf.Bytes()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print without indentation")
	return cmd
}
