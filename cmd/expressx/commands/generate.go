package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/expressx/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <type> <name> [path]",
		Aliases: []string{"g"},
		Short:   "Generate a component",
		Long: `Generate a component from a template.

Types: controller, service, middleware, interceptor, application, guard.
Files are created in the source directory unless a path relative to the
current directory is given.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")

			opts := app.GenerateOptions{
				Kind:   args[0],
				Name:   args[1],
				DryRun: dryRun,
				Force:  force,
			}
			if len(args) == 3 {
				opts.Path = args[2]
			}
			return c.app.Generate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("dry-run", "d", false, "Print the file instead of writing it")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	return cmd
}
