package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/expressx/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the production decorator cache",
		Long: `Scan the source directory, write the development decorator cache and
derive the production cache for the compiled output directory. Run the
TypeScript compiler afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetBool("verbose")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Output:   output,
				Verbose:  verbose,
				Progress: c.progress,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Compiled output directory (defaults to expressx.outDir or tsconfig outDir)")
	cmd.Flags().BoolP("verbose", "v", false, "List every tracked file")
	return cmd
}
