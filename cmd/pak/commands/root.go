// Package commands implements the CLI commands for the pak package manager.
package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/app"
	"go.trai.ch/pak/internal/build"
	"go.trai.ch/pak/internal/core/domain"
)

// Application represents the application logic interface.
type Application interface {
	Add(ctx context.Context, requests []domain.PackageRequest) error
	Rm(ctx context.Context, names []string) error
	Up(ctx context.Context, opts app.UpOptions) error
	Status(ctx context.Context) ([]domain.LockedPackage, error)
}

// Provider builds the application once flags have been parsed.
type Provider func(ctx context.Context) (Application, error)

// CLI represents the command line interface for pak.
type CLI struct {
	provide Provider
	rootCmd *cobra.Command

	once sync.Once
	app  Application
	err  error
}

// New creates a new CLI instance. Global flags are bound to the global viper instance.
func New(provide Provider) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pak",
		Short:         "A content-addressed package manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("project", "p", ".", "Project directory holding Project.toml and Manifest.toml")
	flags.StringSlice("depot", nil, "Depot directories, the first receives installs (repeatable)")
	flags.IntP("jobs", "j", 0, "Maximum number of parallel installs")
	flags.Bool("json-logs", false, "Write logs as JSON")

	v := viper.GetViper()
	_ = v.BindPFlag(config.KeyProject, flags.Lookup("project"))
	_ = v.BindPFlag(config.KeyDepots, flags.Lookup("depot"))
	_ = v.BindPFlag(config.KeyJobs, flags.Lookup("jobs"))
	_ = v.BindPFlag(config.KeyJSONLogs, flags.Lookup("json-logs"))

	c := &CLI{
		provide: provide,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newUpCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// application builds the application on first use.
func (c *CLI) application(ctx context.Context) (Application, error) {
	c.once.Do(func() {
		c.app, c.err = c.provide(ctx)
	})
	return c.app, c.err
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
