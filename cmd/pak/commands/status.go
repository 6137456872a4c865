package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "List locked packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			purl, _ := cmd.Flags().GetBool("purl")

			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			locked, err := a.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if purl {
				for _, pkg := range locked {
					_, _ = fmt.Fprintln(out, pkg.PURL())
				}
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, pkg := range locked {
				mark := "✓"
				if !pkg.Installed {
					mark = "✗"
				}
				kind := "indirect"
				if pkg.Direct {
					kind = "direct"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\tv%s\t[%s]\t%s\n",
					mark, pkg.ID.Name, pkg.Version, pkg.ID.UUID.String()[:8], kind)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("purl", false, "Print package URLs instead of a table")
	return cmd
}
