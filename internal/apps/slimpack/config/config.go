package hostappconfig

import (
	"os"
	"path/filepath"
)

func ConfigBasePath() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		// TODO: non unix systems? do we really want to support them?
		homedir = "/usr/local/config/slimpack"
	}

	return filepath.Join(homedir, ".config", "slimpack")
}

func StateDBFile() string {
	return filepath.Join(ConfigBasePath(), "state.db")
}
