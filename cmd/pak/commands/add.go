package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pak/internal/core/domain"
)

func (c *CLI) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <package[@constraint]>...",
		Short: "Add packages to the project",
		Long: "Add packages by name or uuid, optionally with a version constraint such as " +
			"Example@^1.2. Locked versions that already satisfy the constraint are kept.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			requests := make([]domain.PackageRequest, 0, len(args))
			for _, arg := range args {
				req, err := domain.ParsePackageRequest(arg)
				if err != nil {
					return err
				}
				requests = append(requests, req)
			}

			a, err := c.application(cmd.Context())
			if err != nil {
				return err
			}
			return a.Add(cmd.Context(), requests)
		},
	}
}
