package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	if err := c.Set("https://example.com/bg.png", []byte("png-bytes")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got []byte
	ok, err := c.Get("https://example.com/bg.png", &got)
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("Get = %q, want %q", got, "png-bytes")
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	var v []byte
	ok, err := c.Get("absent", &v)
	if ok || err != nil {
		t.Errorf("Get(absent) = ok=%v err=%v, want miss with nil error", ok, err)
	}
}

func TestCacheExpired(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	if err := c.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)

	var v []byte
	ok, err := c.Get("k", &v)
	if ok {
		t.Error("expired entry should not hit")
	}
	if !errors.Is(err, ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestCacheNamespace(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	images := c.Namespace("img:")
	fonts := c.Namespace("font:")

	if err := images.Set("key", []byte("image")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var v []byte
	if ok, _ := fonts.Get("key", &v); ok {
		t.Error("namespaces should not collide")
	}
	if ok, _ := images.Get("key", &v); !ok {
		t.Error("namespaced entry should hit within its namespace")
	}
}

func TestFetchBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("asset-bytes"))
	}))
	defer srv.Close()

	data, err := FetchBytes(context.Background(), srv.Client(), srv.URL+"/asset.png")
	if err != nil {
		t.Fatalf("FetchBytes: %v", err)
	}
	if string(data) != "asset-bytes" {
		t.Errorf("FetchBytes = %q", data)
	}
}

func TestFetchBytesNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := FetchBytes(context.Background(), srv.Client(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("404 should not retry, got %d calls", calls.Load())
	}
}

func TestFetchBytesRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	data, err := FetchBytes(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchBytes: %v", err)
	}
	if string(data) != "recovered" {
		t.Errorf("FetchBytes = %q", data)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestRetryNonRetryable(t *testing.T) {
	var calls int
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error should not retry, got %d calls", calls)
	}
}
