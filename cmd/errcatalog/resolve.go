package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		locale   string
		asJSON   bool
		nameArgs []string
		descArgs []string
	)

	cmd := &cobra.Command{
		Use:   "resolve <category> <kind> [args...]",
		Short: "Print the localized name and description of an error kind",
		Example: `  errcatalog resolve NetworkError HostNotFoundError --locale fr
  errcatalog resolve JSONError UnknownError 7
  errcatalog resolve ServerError BadRequest --name-arg Quota --description-arg "Quota exceeded"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := errcatalog.Category(args[0])
			if !category.Valid() {
				return fmt.Errorf("%w: %s (one of %v)", errcatalog.ErrUnknownCategory, args[0], errcatalog.Categories())
			}
			kind := errcatalog.Kind(args[1])

			catalog, _, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			templateArgs := toAny(args[2:])
			nArgs, dArgs := templateArgs, templateArgs
			if cmd.Flags().Changed("name-arg") {
				nArgs = toAny(nameArgs)
			}
			if cmd.Flags().Changed("description-arg") {
				dArgs = toAny(descArgs)
			}

			msg, err := catalog.ResolveFields(category, kind, locale, nArgs, dArgs)
			if err != nil && !errors.Is(err, errcatalog.ErrMissingArgument) {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(msg); encErr != nil {
					return encErr
				}
				return err
			}

			fmt.Fprintf(out, "%s\n%s\n", msg.Name, msg.Description)
			if msg.Quality.Degraded() {
				fmt.Fprintf(cmd.ErrOrStderr(), "quality: match=%s completion=%s locale_fallback=%t\n",
					msg.Quality.Match, msg.Quality.Completion, msg.Quality.LocaleFallback)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale to resolve for (default locale when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolved message as JSON")
	cmd.Flags().StringArrayVar(&nameArgs, "name-arg", nil, "argument for the name template only")
	cmd.Flags().StringArrayVar(&descArgs, "description-arg", nil, "argument for the description template only")
	return cmd
}

func toAny(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
