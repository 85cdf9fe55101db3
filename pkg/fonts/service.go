package fonts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/errors"
	"github.com/KudcraftsHQ/slidekit/pkg/httputil"
	"github.com/KudcraftsHQ/slidekit/pkg/observability"
)

// Asset is a resolved font: the raw TTF/OTF bytes plus the identity they
// were resolved under. Weight and Italic reflect the variant actually
// served, after nearest-weight snapping. Fallback marks a substitute for
// an unregistered family.
type Asset struct {
	Family   string
	Weight   int
	Italic   bool
	Name     string
	Data     []byte
	Fallback bool
}

// Options configures a Service. Zero values get sensible defaults.
type Options struct {
	// Registry of known families. Defaults to the built-in registry.
	Registry *Registry

	// Disk is the persistent asset cache. Defaults to a null cache
	// (every resolution downloads).
	Disk cache.Cache

	// Client performs the downloads. Defaults to a client with a
	// 30 second timeout.
	Client *http.Client

	// Keyer generates cache keys. Defaults to the standard keyer.
	Keyer cache.Keyer

	// Logger for resolution diagnostics. Defaults to a silent logger.
	Logger *log.Logger
}

// Service resolves (family, weight, style) requests to font assets.
//
// Assets pass through two cache tiers: an in-process map holding every
// asset touched during the process lifetime, and the persistent Disk
// cache surviving restarts. Concurrent first requests for the same asset
// coalesce into a single download.
type Service struct {
	registry *Registry
	disk     cache.Cache
	client   *http.Client
	keyer    cache.Keyer
	logger   *log.Logger

	mu    sync.RWMutex
	mem   map[string]*Asset
	group singleflight.Group
}

// NewService creates a font resolution service.
func NewService(opts Options) *Service {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Disk == nil {
		opts.Disk = cache.NewNullCache()
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Service{
		registry: opts.Registry,
		disk:     opts.Disk,
		client:   opts.Client,
		keyer:    opts.Keyer,
		logger:   opts.Logger,
		mem:      make(map[string]*Asset),
	}
}

// Resolve returns the font asset for a family, weight, and italic flag.
//
// Registered families resolve to their nearest registered variant; a
// download failure for a registered family is an error (FONT_UNAVAILABLE),
// never a silent substitution. Unregistered families resolve through the
// fallback table and always succeed.
func (s *Service) Resolve(ctx context.Context, family string, weight int, italic bool) (*Asset, error) {
	start := time.Now()

	fam, ok := s.registry.Lookup(family)
	if !ok {
		asset := s.resolveFallback(family, weight, italic)
		observability.Render().OnFontResolve(ctx, family, asset != nil, time.Since(start))
		return asset, nil
	}

	variant, url, ok := fam.ResolveVariant(weight, italic)
	if !ok {
		return nil, errors.New(errors.ErrCodeFontUnavailable,
			"font family %q has no usable variants", fam.Name)
	}

	key := s.keyer.FontKey(fam.Name, variant.Weight, variant.Italic)

	s.mu.RLock()
	asset := s.mem[key]
	s.mu.RUnlock()
	if asset != nil {
		observability.Render().OnFontResolve(ctx, fam.Name, true, time.Since(start))
		return asset, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.loadVariant(ctx, key, fam, variant, url)
	})
	if err != nil {
		return nil, err
	}

	asset = v.(*Asset)
	observability.Render().OnFontResolve(ctx, fam.Name, false, time.Since(start))
	return asset, nil
}

// loadVariant fetches one variant through the disk cache, downloading on
// a miss. Runs inside the singleflight group.
func (s *Service) loadVariant(ctx context.Context, key string, fam Family, v Variant, url string) (*Asset, error) {
	// Another goroutine may have populated memory while we queued.
	s.mu.RLock()
	cached := s.mem[key]
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	data, hit, err := s.disk.Get(ctx, key)
	if err != nil {
		s.logger.Warn("font disk cache read failed", "family", fam.Name, "error", err)
	}
	if !hit {
		s.logger.Debug("downloading font", "family", fam.Name, "variant", v.String(), "url", url)
		data, err = httputil.FetchBytes(ctx, s.client, url)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontUnavailable, err,
				"failed to download font %s %s", fam.Name, v.String())
		}
		if err := s.disk.Set(ctx, key, data, cache.TTLFont); err != nil {
			s.logger.Warn("font disk cache write failed", "family", fam.Name, "error", err)
		}
	}

	asset := &Asset{
		Family: fam.Name,
		Weight: v.Weight,
		Italic: v.Italic,
		Name:   fmt.Sprintf("%s %s", fam.Name, v.String()),
		Data:   data,
	}

	s.mu.Lock()
	s.mem[key] = asset
	s.mu.Unlock()
	return asset, nil
}

// resolveFallback serves an unregistered family from the fallback table,
// memoized per (family, weight, italic).
func (s *Service) resolveFallback(family string, weight int, italic bool) *Asset {
	key := "fallback:" + s.keyer.FontKey(normalizeFamily(family), weight, italic)

	s.mu.RLock()
	asset := s.mem[key]
	s.mu.RUnlock()
	if asset != nil {
		return asset
	}

	asset = fallbackAsset(family, weight, italic)
	s.logger.Warn("font family not registered, using fallback",
		"family", family, "substitute", asset.Name)

	s.mu.Lock()
	s.mem[key] = asset
	s.mu.Unlock()
	return asset
}

// Prefetch warms the caches for the given families at their regular and
// bold weights. Failures are logged, not returned; prefetching is an
// optimization, not a correctness requirement.
func (s *Service) Prefetch(ctx context.Context, families ...string) {
	for _, family := range families {
		for _, weight := range []int{400, 700} {
			if _, err := s.Resolve(ctx, family, weight, false); err != nil {
				s.logger.Warn("font prefetch failed", "family", family, "weight", weight, "error", err)
			}
		}
	}
}

// Families lists the registered families.
func (s *Service) Families() []Family {
	return s.registry.Families()
}
