package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AghoghoOgbotor18/AIPPT/internal/style"
)

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List slide styles with their accent color and layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STYLE\tACCENT\tTITLE\tTITLE Y\tLIST\tIMAGE\tHEADER BAR")
			for _, name := range style.Names() {
				l := style.LayoutFor(name)
				list := "numbered"
				if l.BulletStyle {
					list = "bullets"
				}
				fmt.Fprintf(tw, "%s\t#%s\t%s\t%.1f\t%s\t%s\t%t\n",
					name, style.Accent(name), l.TitleAlign, l.TitleY, list, l.ImagePosition, l.HeaderBar)
			}
			return tw.Flush()
		},
	}
}
