package cache

// Keyer generates cache keys for the engine's two cache namespaces.
// Implementations must be deterministic: the same inputs always produce
// the same key, since render keys double as content fingerprints.
type Keyer interface {
	// FontKey generates a key for a downloaded font asset.
	FontKey(family string, weight int, italic bool) string

	// RenderKey generates a key for rendered slide output.
	// slideHash is the content hash of the slide document.
	RenderKey(slideHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the render parameters that participate in the cache key.
// Anything that changes the output bytes must appear here.
type RenderKeyOpts struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Format        string  `json:"format"`
	JPEGQuality   float64 `json:"jpeg_quality,omitempty"`
	ApplyViewport bool    `json:"apply_viewport,omitempty"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FontKey generates a key for a downloaded font asset.
func (k *DefaultKeyer) FontKey(family string, weight int, italic bool) string {
	return hashKey("font", family, weight, italic)
}

// RenderKey generates a key for rendered slide output.
func (k *DefaultKeyer) RenderKey(slideHash string, opts RenderKeyOpts) string {
	return hashKey("render", slideHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when several workspaces share one Redis render cache and need
// separate namespaces.
//
// Example usage:
//
//	// Workspace-specific keys
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FontKey generates a prefixed key for a font asset.
func (k *ScopedKeyer) FontKey(family string, weight int, italic bool) string {
	return k.prefix + k.inner.FontKey(family, weight, italic)
}

// RenderKey generates a prefixed key for rendered output.
func (k *ScopedKeyer) RenderKey(slideHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(slideHash, opts)
}
