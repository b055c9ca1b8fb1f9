package dockerimage

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kvant-lab/slimpack/internal/dockerfile"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/kvant-lab/slimpack/internal/state"
)

const (
	buildingStaleAfter = 10 * time.Minute
	buildingPrefix     = "BUILDING:" // full format: BUILDING:<unixTs>:<dfSig>
)

func (id ImageID) IsBuilding() bool {
	return strings.HasPrefix(string(id), buildingPrefix)
}

func (id ImageID) isBuildingStale() bool {
	if !id.IsBuilding() {
		return false
	}
	rest := strings.TrimPrefix(string(id), buildingPrefix)
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return false
	}
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}
	return time.Since(time.Unix(sec, 0)) > buildingStaleAfter
}

func newBuildingTag(dfSig string) ImageID {
	now := time.Now().Unix()

	return ImageID(fmt.Sprintf("%s%d:%s", buildingPrefix, now, dfSig))
}

// cacheKeyFromDockerfile deterministically hashes the generated Dockerfile
// lines; the result goes into the image tag, never into a cache lookup (the
// Dockerfile does not cover file contents). Each line is prefixed with its
// length (8-byte big-endian) before hashing to avoid collisions between
// sequences like ["ab", "c"] and ["a", "bc"].
func cacheKeyFromDockerfile(df dockerfile.Dockerfile) state.KVStoreKey {
	h := sha256.New()
	var lenBuf [8]byte

	for _, line := range df {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(line)))
		h.Write(lenBuf[:])
		io.WriteString(h, line)
	}

	return state.KVStoreKey(hex.EncodeToString(h.Sum(nil)))
}

type ImageCache struct {
	kvStore *state.KVStore
}

func NewImageCache(kvStore *state.KVStore) *ImageCache {
	// This cache is intentionally naive. It only skips rebuilds when nothing
	// changed; docker's own layer cache makes a forced rebuild cheap anyway.
	if kvStore == nil {
		logs.Warnf("Image cache is disabled. Skipping cache operations...")
	}
	return &ImageCache{kvStore: kvStore}
}

var defaultImageCache *ImageCache

func DefaultImageCache(ctx context.Context) *ImageCache {
	if defaultImageCache == nil {
		kvStore, err := state.DefaultKVStore(ctx)
		if err != nil {
			logs.Warnf("Error happened while instantiating default KVStore. Skipping... \n%v", err)
		}
		defaultImageCache = NewImageCache(kvStore)
	}

	return defaultImageCache
}

func (ic *ImageCache) get(ctx context.Context, key state.KVStoreKey) (ImageID, bool, state.KVStoreKey) {
	if ic.kvStore == nil {
		return "", false, key
	}

	logs.Debugf("cache.get: looking up key=%s", key)
	entry, found, err := ic.kvStore.Get(ctx, key)
	if err != nil {
		logs.Debugf("cache.get: error during lookup key=%s: %v", key, err)
		return "", false, key
	}
	if entry.Value == "" {
		return "", false, key
	}

	imageID := ImageID(entry.Value)
	if imageID.isBuildingStale() {
		logs.Debugf("cache.get: key=%s has stale building tag, deleting", key)
		ic.delete(ctx, key)
		return "", false, key
	}

	logs.Debugf("cache.get: key=%s returning imageID=%s", key, imageID)
	return imageID, found, key
}

func (ic *ImageCache) delete(ctx context.Context, key state.KVStoreKey) {
	if ic.kvStore == nil {
		return
	}

	if err := ic.kvStore.Delete(ctx, key); err != nil {
		logs.Warnf("Can't delete image id from cache. %v Skipping...", err)
	}
}

func (ic *ImageCache) set(ctx context.Context, key state.KVStoreKey, value ImageID) {
	if ic.kvStore == nil {
		return
	}

	logs.Debugf("cache.set: key=%s, value=%s", key, value)
	if err := ic.kvStore.Upsert(ctx, key, string(value)); err != nil {
		logs.Warnf("Can't upsert image cache. %v Skipping...", err)
	}
}

// GetBySignature looks the image up by the build input signature
// (recipe + manifest + file contents).
func (ic *ImageCache) GetBySignature(ctx context.Context, signature string) (ImageID, bool, state.KVStoreKey) {
	key := state.KVStoreKey(signature)
	if key == "" {
		return "", false, key
	}

	return ic.get(ctx, key)
}

// ClaimBuilding marks the key as being built by this process so a second
// slimpack invocation with the same inputs waits instead of racing the
// same build.
func (ic *ImageCache) ClaimBuilding(ctx context.Context, key state.KVStoreKey, buildSig string) string {
	buildingTag := newBuildingTag(buildSig)

	ic.set(ctx, key, buildingTag)

	return string(buildingTag)
}

// StopBuilding releases a building claim if we still own it.
func (ic *ImageCache) StopBuilding(ctx context.Context, key state.KVStoreKey, expectedBuildTag string) {
	if ic.kvStore == nil {
		return
	}
	entry, found, _ := ic.kvStore.Get(ctx, key)
	if found && entry.Value == expectedBuildTag {
		if err := ic.kvStore.Delete(ctx, key); err != nil {
			logs.Warnf("Can't delete image build tag. Skipping... \n%v", err)
		}
	} else {
		logs.Warnf("Can't release building tag. the value in database does not equal to expected %s != %s", entry.Value, expectedBuildTag)
	}
}

// Purge drops all cache entries.
func (ic *ImageCache) Purge(ctx context.Context) (int64, error) {
	if ic.kvStore == nil {
		return 0, nil
	}
	return ic.kvStore.Purge(ctx)
}
