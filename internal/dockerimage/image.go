// Package dockerimage resolves a build recipe to a built image, going
// through the cache first and the daemon build path on a miss.
package dockerimage

// ImageID is a daemon image reference: a tag, or a transient BUILDING
// marker while another process builds the same image.
type ImageID string
