package dockerimage

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvant-lab/slimpack/internal/state"
)

// composeImageTag builds the "slimpack:<prefix>-<64-hex>" reference the image
// is tagged with. The hex part hashes both cache keys, length-prefixed, so the
// tag is unique per (signature, dockerfile) pair; the prefix only exists so a
// human can tell images apart in 'docker images' output.
func composeImageTag(prefix string, sigKey, dfKey state.KVStoreKey) string {
	h := sha256.New()
	var lenBuf [8]byte

	for _, key := range []state.KVStoreKey{sigKey, dfKey} {
		raw, err := hex.DecodeString(string(key))
		if err != nil {
			raw = []byte(key)
		}
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(raw)))
		h.Write(lenBuf[:])
		h.Write(raw)
	}
	core := hex.EncodeToString(h.Sum(nil))

	pfx := sanitizeTagPrefix(prefix)
	if pfx == "" {
		return "slimpack:" + core
	}

	// Docker caps the tag part at 128 chars: 64 for the hash, one for the
	// separator, which leaves 63 for the prefix.
	if len(pfx) > 63 {
		pfx = pfx[:63]
	}
	return "slimpack:" + pfx + "-" + core
}

// composePrefix derives a short human-readable tag prefix from the project
// path: the last two directories, joined with an underscore, with the home
// directory stripped first.
func composePrefix(projectPath string) string {
	if projectPath == "" {
		return "unknown-project"
	}

	if strings.HasPrefix(projectPath, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			projectPath = filepath.Join(home, strings.TrimPrefix(projectPath, "~"))
		}
	}
	projectPath = filepath.Clean(projectPath)

	if home, err := os.UserHomeDir(); err == nil {
		if after, ok := strings.CutPrefix(projectPath, home); ok {
			projectPath = after
		}
	}

	parts := strings.FieldsFunc(projectPath, func(r rune) bool {
		return r == filepath.Separator
	})

	// A trailing file name (anything with an extension) is not a directory.
	if n := len(parts); n > 0 && strings.ContainsRune(parts[n-1], '.') {
		parts = parts[:n-1]
	}
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}

	prefix := sanitizeTagPrefix(strings.Join(parts, "_"))
	if prefix == "" {
		return "unknown-project"
	}
	return prefix
}

// sanitizeTagPrefix lowercases and keeps only what a docker tag accepts:
// ASCII letters, digits, '_', '.' and '-'. Leading '.'/'-' are trimmed
// because a tag must not start with them.
func sanitizeTagPrefix(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return strings.TrimLeft(b.String(), ".-")
}
