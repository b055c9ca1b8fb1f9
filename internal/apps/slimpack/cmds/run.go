package slimpack

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kvant-lab/slimpack/internal/dockerclient"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [PATH]",
		Short: "Build (if needed) and run the pipeline",
		Long: `Build the pipeline image for PATH if needed, then run it and stream
its output. slimpack exits with the pipeline's exit code.

If PATH is omitted, the current working directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCmdRunE,
	}

	attachBuildCmdFlags(cmd)

	return cmd
}

func runCmdRunE(cmd *cobra.Command, args []string) error {
	logs.Debugf("running pipeline...")

	imageID, err := buildImage(cmd, args)
	if err != nil {
		return err
	}

	pathArg, err := pathFromArgs(args)
	if err != nil {
		return err
	}

	signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignalsCtx()

	dockerClient, err := dockerclient.DefaultDockerClient()
	if err != nil {
		return err
	}

	name := containerName(pathArg)
	logs.Banner(name)

	exitCode, err := dockerClient.RunPipeline(signalsCtx, name, string(imageID))
	if err != nil {
		return err
	}

	if exitCode != 0 {
		return &pipelineExitError{code: int(exitCode)}
	}
	return nil
}

func containerName(pathArg string) string {
	abs, err := filepath.Abs(pathArg)
	if err != nil {
		return "slimpack"
	}
	return "slimpack-" + filepath.Base(abs)
}

// pipelineExitError propagates the container's exit code to the process
// exit status without printing a stack of wrapping errors.
type pipelineExitError struct {
	code int
}

func (e *pipelineExitError) Error() string {
	return fmt.Sprintf("pipeline exited with code %d", e.code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pe *pipelineExitError
	if errors.As(err, &pe) {
		return pe.code
	}
	return 1
}
