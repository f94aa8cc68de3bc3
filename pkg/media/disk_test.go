package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T, maxSize int64) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(t.TempDir(), maxSize)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return s
}

func TestDiskStoreSaveOpen(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	id, err := s.Save(ctx, "image/png", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	a, err := s.Open(ctx, id)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	if a.ContentType != "image/png" {
		t.Errorf("content type = %q", a.ContentType)
	}
	if a.Size != 4 {
		t.Errorf("size = %d", a.Size)
	}
	body, _ := io.ReadAll(a.Reader)
	if string(body) != "data" {
		t.Errorf("body = %q", body)
	}
}

func TestDiskStoreOpenMissing(t *testing.T) {
	s := newTestStore(t, 0)

	if _, err := s.Open(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDiskStoreSizeLimit(t *testing.T) {
	s := newTestStore(t, 8)
	ctx := context.Background()

	// Declared size over the limit.
	if _, err := s.Save(ctx, "text/plain", 100, strings.NewReader("x")); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}

	// Declared size lies; actual content over the limit.
	if _, err := s.Save(ctx, "text/plain", 4, strings.NewReader(strings.Repeat("y", 64))); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge for oversized body, got %v", err)
	}
}

func TestDiskStoreRemove(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	id, err := s.Save(ctx, "text/plain", 2, strings.NewReader("hi"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(ctx, id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Open(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
	// Removing again is not an error.
	if err := s.Remove(ctx, id); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestDiskStoreCleanup(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	id, err := s.Save(ctx, "text/plain", 2, strings.NewReader("hi"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Nothing is old enough yet.
	if err := s.Cleanup(ctx, time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := s.Open(ctx, id); err != nil {
		t.Errorf("asset should survive cleanup: %v", err)
	}

	// Zero max age expires everything.
	s.metas[id].CreatedAt = time.Now().Add(-time.Minute)
	if err := s.Cleanup(ctx, time.Second); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := s.Open(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after cleanup, got %v", err)
	}
}
