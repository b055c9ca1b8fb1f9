package dockerclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/moby/term"
)

const (
	dockerMaxNameLen = 255
	shortLen         = 6       // length of the hash-like suffix
	tailMarker       = "tail-" // visible indicator that we trimmed the left side
)

type DockerPipelineRunner interface {
	RunPipeline(ctx context.Context, name string, imageRef string) (int64, error)
}

// RunPipeline emulates:
//
//	docker run --rm IMAGE
//
// - uses the image's default CMD, no overrides and no arguments
// - streams container output to the local stdout/stderr
// - removes the container on exit
// - the container's exit code becomes the return value
func (dc *dockerClient) RunPipeline(ctx context.Context, name string, imageRef string) (int64, error) {
	outFd, isTerm := term.GetFdInfo(os.Stdout)

	cfg := &container.Config{
		Image: imageRef,
		Tty:   isTerm,
		// CMD comes from the image; the entry command is part of the recipe.
	}

	created, err := dc.client.ContainerCreate(ctx, cfg, &container.HostConfig{}, nil, nil, resolveContainerName(name))
	if err != nil {
		return 0, fmt.Errorf("container create: %w", err)
	}
	id := created.ID

	defer func() {
		_ = dc.client.ContainerRemove(context.Background(), id, container.RemoveOptions{
			Force: true,
		})
	}()

	// Attach BEFORE start (like docker run) so no early output is lost.
	attach, err := dc.client.ContainerAttach(ctx, id, container.AttachOptions{
		Stream: true,
		Stdout: true,
		Stderr: true,
	})
	if err != nil {
		return 0, fmt.Errorf("container attach: %w", err)
	}
	defer attach.Close()

	if err := dc.client.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return 0, fmt.Errorf("container start: %w", err)
	}

	if isTerm {
		if ws, err := term.GetWinsize(outFd); err == nil {
			_ = dc.client.ContainerResize(ctx, id, container.ResizeOptions{
				Height: uint(ws.Height),
				Width:  uint(ws.Width),
			})
		}
	}

	// SIGTERM/SIGINT from outside stops the pipeline container.
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(stopCh)
	go func() {
		<-stopCh
		_ = dc.client.ContainerKill(context.Background(), id, "SIGTERM")
	}()

	outputDone := streamOutput(attach.Reader, isTerm, os.Stdout, os.Stderr)

	statusCh, errCh := dc.client.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return 0, fmt.Errorf("container wait: %w", err)
		}
	case st := <-statusCh:
		// Drain the attach stream to EOF so the tail of the pipeline's
		// output is not cut off.
		<-outputDone
		return st.StatusCode, nil
	}

	return 0, nil
}

// streamOutput copies container output to out/errOut and closes the returned
// channel once the stream is drained. With a TTY the stream is merged;
// without one the daemon multiplexes and stdcopy splits it back.
func streamOutput(r io.Reader, tty bool, out, errOut io.Writer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if tty {
			_, _ = io.Copy(out, r)
			return
		}
		_, _ = stdcopy.StdCopy(out, errOut, r)
	}()
	return done
}

// resolveContainerName: "<name>-<short>", trimming from the LEFT if needed and
// prefixing with "tail-" to show it was trimmed.
func resolveContainerName(name string) string {
	name = sanitizeContainerName(name)
	short := shortHash(name+
		"|"+time.Now().UTC().Format(time.RFC3339Nano)+
		"|"+procTag(),
		shortLen)

	// Ideal: name + "-" + short
	need := len(name) + 1 + len(short)
	if need <= dockerMaxNameLen {
		return name + "-" + short
	}

	// Not enough room. Keep the tail of name and add a visible marker.
	maxName := dockerMaxNameLen - 1 - len(short) // room for '-' + short
	keep := maxName - len(tailMarker)
	if keep < 1 {
		keep = 1
	}
	if keep > len(name) {
		keep = len(name)
	}
	trimmedTail := name[len(name)-keep:]

	return tailMarker + trimmedTail + "-" + short
}

// sanitizeContainerName maps arbitrary input (often a path) onto the charset
// docker accepts for container names: [a-zA-Z0-9_.-], must not start with
// '.', '-' or '_'.
func sanitizeContainerName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.TrimLeft(b.String(), "._-")
	if out == "" {
		return "slimpack"
	}
	return out
}

func shortHash(s string, n int) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:n]
}

// tiny process tag without extra deps
func procTag() string {
	pid := os.Getpid()
	return hex.EncodeToString([]byte{
		byte(pid >> 24), byte(pid >> 16), byte(pid >> 8), byte(pid),
	})
}
