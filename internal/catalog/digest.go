package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// DigestFunc computes a lowercase hex content digest over a byte stream.
// Implementations must read incrementally; they never get the whole
// artifact in memory.
type DigestFunc func(io.Reader) (string, error)

// SHA256Hex is the default DigestFunc.
func SHA256Hex(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("computing digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
