package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report translation coverage of every locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			report := catalog.Coverage()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCALE\tFINISHED\tDRAFT\tMISSING\tEXTRA\tCOMPLETION")
			for _, c := range report {
				name := c.Locale
				if c.Default {
					name += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
					name, c.Finished, c.Draft, c.Missing, c.Extra, c.Completion*100)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if verbose {
				for _, c := range report {
					for _, k := range c.MissingKeys {
						fmt.Fprintf(out, "missing %s\n", k)
					}
					for _, k := range c.DraftKeys {
						fmt.Fprintf(out, "draft   %s\n", k)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list missing and draft templates")
	return cmd
}
