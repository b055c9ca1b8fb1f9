package slimpack

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvant-lab/slimpack/internal/dockerclient"
	"github.com/kvant-lab/slimpack/internal/dockerimage"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/spf13/cobra"
)

type cleanOptions struct {
	Images bool
	Cache  bool
	All    bool
}

func newCleanCmd() *cobra.Command {
	opts := &cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove slimpack images and cache",
		Long: `Remove images built by slimpack and drop the local image cache.

By default, '--all' is implied. Use flags to be more granular.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Images && !opts.Cache && !opts.All {
				opts.All = true
			}

			if opts.All {
				opts.Images = true
				opts.Cache = true
			}

			signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignalsCtx()

			if opts.Images {
				dockerClient, err := dockerclient.DefaultDockerClient()
				if err != nil {
					return err
				}

				images, err := dockerClient.ListImages(signalsCtx)
				if err != nil {
					return err
				}

				removed := 0
				for _, img := range images {
					if err := dockerClient.RemoveImage(signalsCtx, img.ID); err != nil {
						logs.Warnf("Can't remove image %s. Skipping... \n%v", img.Tag, err)
						continue
					}
					removed++
				}
				fmt.Printf("Removed %d image(s)\n", removed)
			}

			if opts.Cache {
				cache := dockerimage.DefaultImageCache(signalsCtx)
				purged, err := cache.Purge(signalsCtx)
				if err != nil {
					return err
				}
				fmt.Printf("Purged %d cache entrie(s)\n", purged)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Clean everything (default behavior)")
	cmd.Flags().BoolVar(&opts.Images, "images", false, "Clean images only")
	cmd.Flags().BoolVar(&opts.Cache, "cache", false, "Clean cache only")

	return cmd
}
