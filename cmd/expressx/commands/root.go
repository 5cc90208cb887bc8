// Package commands implements the CLI commands for the expressx developer tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/build"
)

// CLI represents the command line interface for expressx.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	logger  any

	progress string
}

// Application represents the application logic interface.
type Application interface {
	Dev(ctx context.Context, opts app.DevOptions) error
	Build(ctx context.Context, opts app.BuildOptions) error
	NewProject(ctx context.Context, name string, opts app.NewOptions) error
	Generate(ctx context.Context, opts app.GenerateOptions) error
}

// jsonSwitcher is satisfied by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// Option configures the CLI.
type Option func(*CLI)

// WithLogger lets the --json-logs flag switch the logger format when the
// logger supports it.
func WithLogger(logger any) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "expressx",
		Short:         "Developer tooling for ExpressX applications",
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	jsonLogs := rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&c.progress, "progress", "auto", "Scan progress output: auto, interactive or linear")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.setJSON(*jsonLogs)
	}

	rootCmd.AddCommand(c.newDevCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newNewCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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
