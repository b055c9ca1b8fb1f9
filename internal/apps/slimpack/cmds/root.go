package slimpack

import (
	"context"

	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/spf13/cobra"
)

var verbosity int

func Execute(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:   "slimpack [PATH]",
		Short: "Reproducible container images for Python pipelines",
		Long: `slimpack builds a slim, reproducible container image for a Python
pipeline project and runs it.

By default, 'slimpack' is equivalent to 'slimpack build [PATH]'.
If PATH is omitted, the current working directory is used.`,
		Args: cobra.MaximumNArgs(1),
		// Default behavior is the same as 'build'
		RunE: buildCmdRunE,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logs.SetDebugVerbosity(verbosity)
			return nil
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")

	// Root should accept the same flags as `build`
	attachBuildCmdFlags(rootCmd)

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDockerfileCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd.ExecuteContext(ctx)
}
