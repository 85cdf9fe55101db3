package slide

import (
	"encoding/json"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
)

// Hash returns the deterministic content hash of the slide document.
//
// The hash is a SHA-256 over the canonical JSON encoding (struct field
// order is fixed, so encoding is stable). Together with the target render
// parameters it forms the render cache key: two renders share a cache
// entry exactly when both the document and the parameters match.
func (s *Slide) Hash() string {
	data, err := json.Marshal(s)
	if err != nil {
		// Marshal of a plain value struct cannot fail; keep the signature
		// hash-like anyway.
		return cache.Hash([]byte("unhashable"))
	}
	return cache.Hash(data)
}
