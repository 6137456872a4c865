package commands

import "github.com/spf13/cobra"

func (c *CLI) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <package>...",
		Aliases: []string{"remove"},
		Short:   "Remove packages and everything that depends on them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Rm(cmd.Context(), args)
		},
	}
}
