package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AghoghoOgbotor18/AIPPT/internal/colors"
)

func newColorsCmd() *cobra.Command {
	var listNames bool

	cmd := &cobra.Command{
		Use:   "colors <expr>...",
		Short: "Resolve color expressions and show the contrasting text color",
		Long: `Resolve hex (#RRGGBB or RRGGBB), rgb(r, g, b) and named colors the same
way deck themes are resolved. Unrecognized input resolves to white.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listNames {
				for _, name := range colors.Names() {
					fmt.Fprintf(out, "%-10s #%s\n", name, colors.Resolve(name))
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("at least one color expression is required")
			}
			for _, expr := range args {
				bg := colors.Resolve(expr)
				fmt.Fprintf(out, "%q -> #%s text #%s\n", expr, bg, colors.Contrast(bg))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listNames, "names", false, "List the named colors")
	return cmd
}
