package dockerclient

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
)

// ImageInfo is the subset of image metadata the CLI shows and cleans.
type ImageInfo struct {
	ID      string
	Tag     string
	Entry   string
	Created string
	Size    int64
}

// ListImages returns every image built by slimpack, newest first
// (daemon order), identified by the slimpack=true label.
func (dc *dockerClient) ListImages(ctx context.Context) ([]*ImageInfo, error) {
	args := filters.NewArgs()
	args.Add("label", "slimpack=true")

	summaries, err := dc.client.ImageList(ctx, image.ListOptions{
		All:     false,
		Filters: args,
	})
	if err != nil {
		return nil, fmt.Errorf("image list: %w", err)
	}

	out := make([]*ImageInfo, 0, len(summaries))
	for _, s := range summaries {
		tag := "<none>"
		if len(s.RepoTags) > 0 {
			tag = s.RepoTags[0]
		}
		out = append(out, &ImageInfo{
			ID:      s.ID,
			Tag:     tag,
			Entry:   s.Labels["slimpack.entry"],
			Created: time.Unix(s.Created, 0).UTC().Format(time.RFC3339),
			Size:    s.Size,
		})
	}
	return out, nil
}

// RemoveImage force-removes one image by ID or tag.
func (dc *dockerClient) RemoveImage(ctx context.Context, ref string) error {
	_, err := dc.client.ImageRemove(ctx, ref, image.RemoveOptions{
		Force:         true,
		PruneChildren: true,
	})
	if err != nil {
		return fmt.Errorf("image remove %s: %w", ref, err)
	}
	return nil
}
