package slimpack

import (
	"fmt"

	"github.com/kvant-lab/slimpack/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of slimpack",
		Long:  `Display the current version of slimpack.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", version.Get())
		},
	}

	return cmd
}
