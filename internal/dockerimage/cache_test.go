package dockerimage

import (
	"fmt"
	"testing"
	"time"

	"github.com/kvant-lab/slimpack/internal/dockerfile"
)

func TestCacheKeyFromDockerfile_Deterministic(t *testing.T) {
	t.Parallel()

	df := dockerfile.Dockerfile{"FROM python:3.11.11-slim", "WORKDIR /app"}

	if cacheKeyFromDockerfile(df) != cacheKeyFromDockerfile(df) {
		t.Fatal("same dockerfile produced different keys")
	}
}

func TestCacheKeyFromDockerfile_NoLineBoundaryCollision(t *testing.T) {
	t.Parallel()

	a := cacheKeyFromDockerfile(dockerfile.Dockerfile{"ab", "c"})
	b := cacheKeyFromDockerfile(dockerfile.Dockerfile{"a", "bc"})

	if a == b {
		t.Fatal("line boundary collision in cache key")
	}
}

func TestCacheKeyFromDockerfile_ContentSensitive(t *testing.T) {
	t.Parallel()

	a := cacheKeyFromDockerfile(dockerfile.Dockerfile{"FROM python:3.11.11-slim"})
	b := cacheKeyFromDockerfile(dockerfile.Dockerfile{"FROM python:3.12.8-slim"})

	if a == b {
		t.Fatal("different dockerfiles produced the same key")
	}
}

func TestBuildingTag_Roundtrip(t *testing.T) {
	t.Parallel()

	tag := newBuildingTag("dfsig")

	if !tag.IsBuilding() {
		t.Fatalf("fresh building tag not recognized: %s", tag)
	}
	if tag.isBuildingStale() {
		t.Fatalf("fresh building tag reported stale: %s", tag)
	}
}

func TestBuildingTag_Stale(t *testing.T) {
	t.Parallel()

	old := time.Now().Add(-11 * time.Minute).Unix()
	tag := ImageID(fmt.Sprintf("%s%d:dfsig", buildingPrefix, old))

	if !tag.isBuildingStale() {
		t.Fatalf("11-minute-old building tag should be stale: %s", tag)
	}
}

func TestBuildingTag_RegularImageIDIsNotBuilding(t *testing.T) {
	t.Parallel()

	id := ImageID("slimpack:proj-deadbeef")

	if id.IsBuilding() {
		t.Fatal("regular image id misread as building")
	}
	if id.isBuildingStale() {
		t.Fatal("regular image id misread as stale building")
	}
}
