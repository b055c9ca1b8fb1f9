package slimpack

import (
	"fmt"

	"github.com/kvant-lab/slimpack/internal/dockerfile"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/spf13/cobra"
)

func newDockerfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dockerfile [PATH]",
		Aliases: []string{"df"},
		Short:   "Print the generated Dockerfile",
		Long: `Generate and print the Dockerfile for the pipeline at PATH without
building anything. If PATH is omitted, the current working directory
is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logs.Debugf("generating dockerfile...")

			pathArg, err := pathFromArgs(args)
			if err != nil {
				return err
			}

			proj, err := resolveProject(pathArg)
			if err != nil {
				return err
			}

			fmt.Print(dockerfile.Generate(proj.Recipe, proj.Base).String())
			return nil
		},
	}

	return cmd
}
