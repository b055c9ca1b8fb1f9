package slimpack

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvant-lab/slimpack/internal/dockerimage"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	ForceRebuild bool
}

// attachBuildCmdFlags attaches the "build" cmd flags to the given command and
// injects a buildOptions instance into the command's context via PreRun.
func attachBuildCmdFlags(cmd *cobra.Command) {
	opts := &buildOptions{}

	flags := cmd.Flags()
	flags.BoolVar(&opts.ForceRebuild, "rebuild", false, "Rebuild the image even when cached")

	// Store opts in command context before running
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withBuildOptions(cmd.Context(), opts))
	}
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [PATH]",
		Short: "Build the pipeline image",
		Long: `Build a container image for the pipeline at PATH.

The image is cached: an unchanged project resolves to the same image
without rebuilding. If PATH is omitted, the current working directory
is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: buildCmdRunE,
	}

	attachBuildCmdFlags(cmd)

	return cmd
}

// buildCmdRunE is a separate function so root can reuse it (default command)
func buildCmdRunE(cmd *cobra.Command, args []string) error {
	logs.Debugf("building pipeline image...")

	imageID, err := buildImage(cmd, args)
	if err != nil {
		return err
	}

	fmt.Println(imageID)
	return nil
}

// buildImage is shared between 'build' and 'run'.
func buildImage(cmd *cobra.Command, args []string) (dockerimage.ImageID, error) {
	opts := getBuildOptions(cmd.Context())
	if opts == nil {
		// This should not normally happen because attachBuildCmdFlags sets
		// it, but keep a safe fallback for root or tests.
		opts = &buildOptions{}
	}

	pathArg, err := pathFromArgs(args)
	if err != nil {
		return "", err
	}

	signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignalsCtx()

	proj, err := resolveProject(pathArg)
	if err != nil {
		return "", err
	}

	resolver, err := dockerimage.DefaultResolver(signalsCtx)
	if err != nil {
		return "", err
	}

	return resolver.ResolveImage(signalsCtx, proj.Context, proj.Recipe, proj.Base, opts.ForceRebuild)
}

type ctxKeyBuildOptions struct{}

func withBuildOptions(ctx context.Context, opts *buildOptions) context.Context {
	return context.WithValue(ctx, ctxKeyBuildOptions{}, opts)
}

func getBuildOptions(ctx context.Context) *buildOptions {
	v := ctx.Value(ctxKeyBuildOptions{})
	if v == nil {
		return nil
	}
	return v.(*buildOptions)
}
