package dockerimage

import (
	"context"
	"time"

	"github.com/kvant-lab/slimpack/internal/baseimage"
	"github.com/kvant-lab/slimpack/internal/buildcontext"
	"github.com/kvant-lab/slimpack/internal/dockerclient"
	"github.com/kvant-lab/slimpack/internal/dockerfile"
	"github.com/kvant-lab/slimpack/internal/logs"
	"github.com/kvant-lab/slimpack/internal/recipe"
)

type Resolver struct {
	dockerClient dockerclient.DockerClient
	imageCache   *ImageCache
}

func NewResolver(dockerClient dockerclient.DockerClient, imageCache *ImageCache) *Resolver {
	return &Resolver{
		dockerClient: dockerClient,
		imageCache:   imageCache,
	}
}

var defaultResolver *Resolver

func DefaultResolver(ctx context.Context) (*Resolver, error) {
	if defaultResolver == nil {
		dockerClient, err := dockerclient.DefaultDockerClient()
		if err != nil {
			return nil, err
		}
		imageCache := DefaultImageCache(ctx)
		defaultResolver = NewResolver(dockerClient, imageCache)
	}

	return defaultResolver, nil
}

// ResolveImage returns a built image for the given recipe and context,
// reusing a cached image when the inputs are unchanged. With forceRebuild
// the cache is bypassed (the result is still recorded).
//
// The cache is guarded by the input signature alone: it covers the recipe
// and the content of every build input, so anything weaker (the generated
// Dockerfile, say, which never sees file contents) could hand one project
// an image built from another project's files. The Dockerfile hash only
// feeds the image tag. A hit is honored only while the image still exists
// in the daemon.
func (r *Resolver) ResolveImage(ctx context.Context, bc *buildcontext.Context, rec *recipe.Recipe, base baseimage.Ref, forceRebuild bool) (ImageID, error) {
	signature, err := bc.Signature(rec)
	if err != nil {
		return "", err
	}

	for {
		logs.Debugf("trying to resolve image for %s", bc.Root())

		id, found, key := r.imageCache.GetBySignature(ctx, signature)
		if found && !forceRebuild {
			if id.IsBuilding() {
				logs.Warnf("Another slimpack process is building the same image. Waiting... (use --rebuild to not wait)")
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(1 * time.Second):
				}
				continue
			}
			if r.dockerClient.ImageExists(ctx, string(id)) {
				return id, nil
			}
			// The daemon no longer has it; the entry is stale.
			r.imageCache.delete(ctx, key)
		}

		logs.Debugf("cache miss. validating context and starting build...")

		if err := bc.Validate(rec); err != nil {
			return "", err
		}

		df := dockerfile.Generate(rec, base)
		archive, err := bc.Archive(df, rec)
		if err != nil {
			return "", err
		}

		dfKey := cacheKeyFromDockerfile(df)
		buildingTag := r.imageCache.ClaimBuilding(ctx, key, string(dfKey))

		imageTag := composeImageTag(composePrefix(bc.Root()), key, dfKey)
		builtTag, err := r.dockerClient.BuildImage(ctx, archive, imageTag)
		if err != nil {
			r.imageCache.StopBuilding(ctx, key, buildingTag)
			return "", err
		}

		r.imageCache.set(ctx, key, ImageID(builtTag))

		return ImageID(builtTag), nil
	}
}
