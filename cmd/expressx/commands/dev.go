package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/expressx/internal/app"
)

func (c *CLI) newDevCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dev [flags] [node flags] [app args]",
		Aliases: []string{"start"},
		Short:   "Run the application and restart it on source changes",
		Long: `Run the application and restart it on source changes.

Node.js options such as --inspect or --max-old-space-size are passed to the
interpreter. Every other argument is passed to the application.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rest, help := c.takeOwnFlags(args)
			if help {
				return cmd.Help()
			}
			return c.app.Dev(cmd.Context(), app.DevOptions{
				Args:     rest,
				Progress: c.progress,
			})
		},
	}
}

// takeOwnFlags removes the expressx flags from args of a command that passes
// its arguments through. Parsing stops at "--", which is dropped.
func (c *CLI) takeOwnFlags(args []string) (rest []string, help bool) {
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(rest, args[i+1:]...), help
		case arg == "-h" || arg == "--help":
			help = true
		case arg == "--json-logs" || arg == "--json-logs=true":
			c.setJSON(true)
		case arg == "--json-logs=false":
			c.setJSON(false)
		case strings.HasPrefix(arg, "--progress="):
			c.progress = strings.TrimPrefix(arg, "--progress=")
		case arg == "--progress" && i+1 < len(args):
			c.progress = args[i+1]
			i++
		default:
			rest = append(rest, arg)
		}
	}
	return rest, help
}

func (c *CLI) setJSON(enable bool) {
	if s, ok := c.logger.(jsonSwitcher); ok {
		s.SetJSON(enable)
	}
}
