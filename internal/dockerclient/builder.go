package dockerclient

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/build"
	sdkimage "github.com/docker/go-sdk/image"
)

type DockerImageBuilder interface {
	// BuildImage streams a tar build context to the daemon and returns the
	// tag of the built image. Any failing build step aborts the whole build.
	BuildImage(ctx context.Context, buildContext io.Reader, tag string) (string, error)
}

func (dc *dockerClient) BuildImage(ctx context.Context, buildContext io.Reader, tag string) (string, error) {
	buildTag, err := sdkimage.Build(
		ctx,
		buildContext,
		tag,
		sdkimage.WithBuildClient(dc.client),
		sdkimage.WithBuildOptions(build.ImageBuildOptions{
			Dockerfile: "Dockerfile",
			Remove:     true, // remove intermediate containers
		}),
	)
	if err != nil {
		return "", fmt.Errorf("image build: %w", err)
	}

	return buildTag, nil
}
