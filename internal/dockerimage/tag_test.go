package dockerimage

import (
	"strings"
	"testing"

	"github.com/kvant-lab/slimpack/internal/state"
)

func TestComposeImageTag_Deterministic(t *testing.T) {
	t.Parallel()

	a := composeImageTag("proj", state.KVStoreKey("aabb"), state.KVStoreKey("ccdd"))
	b := composeImageTag("proj", state.KVStoreKey("aabb"), state.KVStoreKey("ccdd"))

	if a != b {
		t.Fatalf("same inputs produced different tags: %s != %s", a, b)
	}
	if !strings.HasPrefix(a, "slimpack:proj-") {
		t.Fatalf("unexpected tag format: %s", a)
	}
}

func TestComposeImageTag_KeyOrderMatters(t *testing.T) {
	t.Parallel()

	a := composeImageTag("proj", state.KVStoreKey("aabb"), state.KVStoreKey("ccdd"))
	b := composeImageTag("proj", state.KVStoreKey("ccdd"), state.KVStoreKey("aabb"))

	if a == b {
		t.Fatal("swapping keys should change the tag")
	}
}

func TestComposeImageTag_NoPrefix(t *testing.T) {
	t.Parallel()

	tag := composeImageTag("", state.KVStoreKey("aabb"), state.KVStoreKey("ccdd"))

	if !strings.HasPrefix(tag, "slimpack:") {
		t.Fatalf("unexpected tag format: %s", tag)
	}
	// repo + ":" + 64 hex chars
	if len(tag) != len("slimpack:")+64 {
		t.Fatalf("unexpected tag length %d: %s", len(tag), tag)
	}
}

func TestComposeImageTag_LongPrefixTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 100)
	tag := composeImageTag(long, state.KVStoreKey("aabb"), state.KVStoreKey("ccdd"))

	tagPart := strings.TrimPrefix(tag, "slimpack:")
	if len(tagPart) > 128 {
		t.Fatalf("tag part exceeds docker's 128-char limit: %d", len(tagPart))
	}
}

func TestComposePrefix_LastTwoDirs(t *testing.T) {
	t.Parallel()

	got := composePrefix("/srv/pipelines/calls/etl")
	want := "calls_etl"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestComposePrefix_SingleDir(t *testing.T) {
	t.Parallel()

	got := composePrefix("/etl")
	want := "etl"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestComposePrefix_Empty(t *testing.T) {
	t.Parallel()

	if got := composePrefix(""); got != "unknown-project" {
		t.Fatalf("got %s, want unknown-project", got)
	}
}

func TestSanitizeTagPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Calls ETL", "callsetl"},
		{"--weird..", "weird.."},
		{"päck", "pck"},
		{"***", ""},
		{"under_score-ok", "under_score-ok"},
	}

	for _, c := range cases {
		if got := sanitizeTagPrefix(c.in); got != c.want {
			t.Fatalf("sanitizeTagPrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
