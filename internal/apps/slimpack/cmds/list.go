package slimpack

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvant-lab/slimpack/internal/dockerclient"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/kvant-lab/slimpack/internal/ui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pipeline images",
		Long:    "List images built by slimpack on this machine.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs.Debugf("running list...")

			signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignalsCtx()

			dockerClient, err := dockerclient.DefaultDockerClient()
			if err != nil {
				return err
			}

			images, err := dockerClient.ListImages(signalsCtx)
			if err != nil {
				return err
			}

			if len(images) == 0 {
				fmt.Println("No images found")
				return nil
			}

			colums := []ui.Column{
				{Header: "Tag", MaxWidth: 48},
				{Header: "Entry"},
				{Header: "Created"},
				{Header: "Size"},
			}

			table := ui.NewTable(colums...)

			for _, img := range images {
				table.AddRow(img.Tag, img.Entry, img.Created, humanSize(img.Size))
			}

			logs.Spacer()
			table.Render(os.Stdout)
			logs.Spacer()
			fmt.Println("Use 'slimpack run' to run or 'slimpack clean' to remove")

			return nil
		},
	}

	return cmd
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
