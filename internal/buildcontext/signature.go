package buildcontext

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/kvant-lab/slimpack/internal/recipe"
)

// Signature deterministically hashes everything that can change the image:
// the canonical recipe key plus the content of the manifest and every
// application file. Each chunk is prefixed with its length (8-byte
// big-endian) before hashing to avoid collisions between sequences like
// ["ab", "c"] and ["a", "bc"].
func (c *Context) Signature(r *recipe.Recipe) (string, error) {
	h := sha256.New()
	var lenBuf [8]byte

	write := func(chunk []byte) {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(chunk)))
		h.Write(lenBuf[:])
		h.Write(chunk)
	}

	write([]byte(r.Key()))

	for _, rel := range append([]string{r.Manifest}, r.Files...) {
		content, err := c.ops.OS.ReadFile(c.ops.Path.Join(c.root, rel))
		if err != nil {
			return "", fmt.Errorf("signature: read %s: %w", rel, err)
		}
		write([]byte(rel))
		write(content)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
