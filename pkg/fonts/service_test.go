package fonts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/KudcraftsHQ/slidekit/pkg/cache"
	"github.com/KudcraftsHQ/slidekit/pkg/errors"
)

// testRegistry registers a single family served by the given URL.
func testRegistry(url string) *Registry {
	return NewRegistry(Family{
		Name: "Test Sans",
		Variants: map[Variant]string{
			{Weight: 400}: url + "/regular.ttf",
			{Weight: 700}: url + "/bold.ttf",
		},
	})
}

func TestResolveDownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(goregular.TTF)
	}))
	defer srv.Close()

	svc := NewService(Options{Registry: testRegistry(srv.URL)})

	// Concurrent first requests for the same variant coalesce into one
	// download.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			asset, err := svc.Resolve(context.Background(), "Test Sans", 400, false)
			if err != nil {
				t.Errorf("Resolve failed: %v", err)
				return
			}
			if len(asset.Data) == 0 {
				t.Error("resolved asset has no data")
			}
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Errorf("server saw %d downloads, want 1", got)
	}

	// Later calls hit memory.
	if _, err := svc.Resolve(context.Background(), "Test Sans", 400, false); err != nil {
		t.Fatalf("warm Resolve failed: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("warm resolve should not download, server saw %d", got)
	}
}

func TestResolveDiskCacheSurvivesRestart(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(goregular.TTF)
	}))
	defer srv.Close()

	disk, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	first := NewService(Options{Registry: testRegistry(srv.URL), Disk: disk})
	if _, err := first.Resolve(context.Background(), "Test Sans", 400, false); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// A fresh service with the same disk cache should not re-download.
	second := NewService(Options{Registry: testRegistry(srv.URL), Disk: disk})
	asset, err := second.Resolve(context.Background(), "Test Sans", 400, false)
	if err != nil {
		t.Fatalf("Resolve after restart: %v", err)
	}
	if len(asset.Data) != len(goregular.TTF) {
		t.Errorf("asset data length = %d, want %d", len(asset.Data), len(goregular.TTF))
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server saw %d downloads, want 1", got)
	}
}

func TestResolveSnapsWeight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(goregular.TTF)
	}))
	defer srv.Close()

	svc := NewService(Options{Registry: testRegistry(srv.URL)})

	asset, err := svc.Resolve(context.Background(), "Test Sans", 600, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if asset.Weight != 700 {
		t.Errorf("weight 600 should snap to 700, got %d", asset.Weight)
	}
}

func TestResolveRegisteredFamilyFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := NewService(Options{Registry: testRegistry(srv.URL)})

	// A registered family that cannot be fetched must error, not silently
	// downgrade to a fallback face.
	asset, err := svc.Resolve(context.Background(), "Test Sans", 400, false)
	if err == nil {
		t.Fatalf("Resolve should fail, got asset %q", asset.Name)
	}
	if !errors.Is(err, errors.ErrCodeFontUnavailable) {
		t.Errorf("error code = %s, want FONT_UNAVAILABLE", errors.GetCode(err))
	}
}

func TestResolveUnregisteredFamilyFallsBack(t *testing.T) {
	svc := NewService(Options{})

	asset, err := svc.Resolve(context.Background(), "Comic Nonexistent", 400, false)
	if err != nil {
		t.Fatalf("fallback resolution should not fail: %v", err)
	}
	if !asset.Fallback {
		t.Error("asset should be marked as a fallback")
	}
	if len(asset.Data) == 0 {
		t.Error("fallback asset has no data")
	}
	if asset.Family != "Comic Nonexistent" {
		t.Errorf("fallback keeps the requested family, got %q", asset.Family)
	}
}

func TestWantsSerif(t *testing.T) {
	tests := []struct {
		family string
		want   bool
	}{
		{"PT Serif", true},
		{"Times Newer Roman", true},
		{"PT Sans Serif", false}, // "sans" wins
		{"Comic Neue", false},
	}
	for _, tt := range tests {
		if got := wantsSerif(tt.family); got != tt.want {
			t.Errorf("wantsSerif(%q) = %v, want %v", tt.family, got, tt.want)
		}
	}
}
