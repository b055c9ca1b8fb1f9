package dockerclient

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/docker/docker/pkg/stdcopy"
)

func TestStreamOutput_DrainsBeforeSignaling(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	var out bytes.Buffer

	done := streamOutput(pr, true, &out, io.Discard)

	if _, err := pw.Write([]byte("line one\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-done:
		t.Fatal("stream reported drained while still open")
	case <-time.After(10 * time.Millisecond):
	}

	if _, err := pw.Write([]byte("final line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := pw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	<-done

	want := "line one\nfinal line\n"
	if got := out.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStreamOutput_DemuxesWithoutTTY(t *testing.T) {
	t.Parallel()

	// Frame stdout/stderr the way the daemon does on a non-TTY attach.
	var raw bytes.Buffer
	if _, err := stdcopy.NewStdWriter(&raw, stdcopy.Stdout).Write([]byte("result\n")); err != nil {
		t.Fatalf("frame stdout: %v", err)
	}
	if _, err := stdcopy.NewStdWriter(&raw, stdcopy.Stderr).Write([]byte("warning\n")); err != nil {
		t.Fatalf("frame stderr: %v", err)
	}

	var out, errOut bytes.Buffer
	<-streamOutput(&raw, false, &out, &errOut)

	if got := out.String(); got != "result\n" {
		t.Fatalf("stdout got %q, want %q", got, "result\n")
	}
	if got := errOut.String(); got != "warning\n" {
		t.Fatalf("stderr got %q, want %q", got, "warning\n")
	}
}

func TestResolveContainerName_SanitizesPathInput(t *testing.T) {
	t.Parallel()

	name := resolveContainerName("/srv/pipelines/calls etl")

	if len(name) > dockerMaxNameLen {
		t.Fatalf("name too long: %d", len(name))
	}
	for i, r := range name {
		valid := r == '_' || r == '.' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !valid {
			t.Fatalf("invalid rune %q at %d in container name %q", r, i, name)
		}
	}
	if name[0] == '.' || name[0] == '-' || name[0] == '_' {
		t.Fatalf("container name starts with separator: %q", name)
	}
}
