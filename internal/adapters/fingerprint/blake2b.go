package fingerprint

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"attendeelist/internal/domain"
)

type blake2bHasher struct {
	key []byte
}

// NewBlake2bHasher returns an EmailHasher computing keyed BLAKE2b-256 over the
// trimmed, lower-cased email. The key must be 1 to 64 bytes.
func NewBlake2bHasher(key string) (domain.EmailHasher, error) {
	if len(key) == 0 || len(key) > blake2b.Size {
		return nil, fmt.Errorf("email hash key must be 1-%d bytes, got %d", blake2b.Size, len(key))
	}
	return &blake2bHasher{key: []byte(key)}, nil
}

func (h *blake2bHasher) Hash(email string) string {
	// New256 only fails on an oversized key, which the constructor rejects.
	d, _ := blake2b.New256(h.key)
	d.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(d.Sum(nil))
}
