package dockerclient

import (
	"context"
	"log/slog"
	"os"

	"github.com/docker/go-sdk/client"
)

type dockerClient struct {
	client client.SDKClient
}

type DockerClient interface {
	DockerImageBuilder
	DockerPipelineRunner
	ImageExists(context.Context, string) bool
	ListImages(context.Context) ([]*ImageInfo, error)
	RemoveImage(context.Context, string) error
}

var defaultClient *dockerClient

func DefaultDockerClient() (*dockerClient, error) {
	if defaultClient == nil {
		dc, err := NewDockerClient()
		if err != nil {
			return nil, err
		}
		defaultClient = dc
	}
	return defaultClient, nil
}

func NewDockerClient() (*dockerClient, error) {
	client, err := client.New(
		context.Background(),
		client.WithLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))),
	)
	if err != nil {
		return nil, err
	}

	return &dockerClient{
		client: client,
	}, nil
}

func (dc *dockerClient) ImageExists(ctx context.Context, imageRef string) bool {
	_, err := dc.client.ImageInspect(ctx, imageRef)

	return err == nil
}
