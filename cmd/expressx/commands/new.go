package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/expressx/internal/app"
	"go.trai.ch/expressx/internal/core/domain"
)

func (c *CLI) newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new <name>",
		Aliases: []string{"create"},
		Short:   "Create a new ExpressX project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, _ := cmd.Flags().GetString("template")
			skipInstall, _ := cmd.Flags().GetBool("skip-install")
			skipGit, _ := cmd.Flags().GetBool("skip-git")

			return c.app.NewProject(cmd.Context(), args[0], app.NewOptions{
				Template:    template,
				SkipInstall: skipInstall,
				SkipGit:     skipGit,
			})
		},
	}
	cmd.Flags().StringP("template", "t", domain.DefaultProjectTemplate, "Project template: default, api or full")
	cmd.Flags().Bool("skip-install", false, "Do not run npm install")
	cmd.Flags().Bool("skip-git", false, "Do not initialize a git repository")
	return cmd
}
