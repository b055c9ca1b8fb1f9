package version

// Version is the CLI version, overridable at link time:
//
//	go build -ldflags "-X github.com/kvant-lab/slimpack/internal/version.Version=v0.4.0"
var Version = "v0.3.1-dev"

func Get() string {
	return Version
}

// ImageSchemaVersion increments when Dockerfile generation changes require image rebuilds.
//
// Bump for:
//   - Dockerfile generation logic changes
//   - Label format changes
//   - Entry command format changes
//
// Don't bump for:
//   - CLI-only changes
//   - Bug fixes not affecting image content
const ImageSchemaVersion = 1

const ImageSchemaVersionLabel = "slimpack.image_schema_version"
