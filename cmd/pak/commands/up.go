package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/core/domain"
)

func (c *CLI) newUpCmd() *cobra.Command {
	defaults := app.DefaultUpOptions()

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Upgrade locked packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			directFlag, _ := cmd.Flags().GetString("direct")
			indirectFlag, _ := cmd.Flags().GetString("indirect")

			direct, err := domain.ParseUpgradeLevel(directFlag)
			if err != nil {
				return err
			}
			indirect, err := domain.ParseUpgradeLevel(indirectFlag)
			if err != nil {
				return err
			}

			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Up(cmd.Context(), app.UpOptions{Direct: direct, Indirect: indirect})
		},
	}
	cmd.Flags().String("direct", string(defaults.Direct), "Upgrade level for direct dependencies (fixed, patch, minor, major)")
	cmd.Flags().String("indirect", string(defaults.Indirect), "Upgrade level for indirect dependencies (fixed, patch, minor, major)")
	return cmd
}
