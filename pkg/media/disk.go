package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DiskStore stores assets on the local filesystem. Each asset is a file
// named by its ID with a sidecar .meta file holding the content type.
type DiskStore struct {
	dir     string
	maxSize int64

	mu    sync.RWMutex
	metas map[string]*diskMeta
}

type diskMeta struct {
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDiskStore creates a DiskStore rooted at dir. maxSize of 0 means no
// size limit.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{
		dir:     dir,
		maxSize: maxSize,
		metas:   make(map[string]*diskMeta),
	}, nil
}

// Save stores an asset and returns its ID.
func (s *DiskStore) Save(ctx context.Context, contentType string, size int64, r io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	id := newAssetID()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1) // +1 to detect overflow
	}

	written, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(path)
		return "", ErrTooLarge
	}

	meta := &diskMeta{
		ContentType: contentType,
		Size:        written,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.metas[id] = meta
	s.mu.Unlock()

	// Persist metadata so assets survive restarts.
	s.saveMeta(id, meta)

	return id, nil
}

// Open retrieves an asset by ID.
func (s *DiskStore) Open(ctx context.Context, id string) (*Asset, error) {
	s.mu.RLock()
	meta, ok := s.metas[id]
	s.mu.RUnlock()

	if !ok {
		var err error
		meta, err = s.loadMeta(id)
		if err != nil {
			return nil, ErrNotFound
		}
	}

	f, err := os.Open(filepath.Join(s.dir, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Asset{
		ID:          id,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		Reader:      f,
	}, nil
}

// Remove deletes an asset by ID.
func (s *DiskStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.metas, id)
	s.mu.Unlock()

	os.Remove(filepath.Join(s.dir, id))
	os.Remove(s.metaPath(id))
	return nil
}

// Cleanup removes assets older than maxAge.
func (s *DiskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	for id, meta := range s.metas {
		if meta.CreatedAt.Before(cutoff) {
			delete(s.metas, id)
			os.Remove(filepath.Join(s.dir, id))
			os.Remove(s.metaPath(id))
		}
	}
	s.mu.Unlock()

	// Scan for orphans left by previous processes.
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
	return nil
}

func (s *DiskStore) metaPath(id string) string {
	return filepath.Join(s.dir, id+".meta")
}

func (s *DiskStore) saveMeta(id string, meta *diskMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(s.metaPath(id), data, 0644)
}

func (s *DiskStore) loadMeta(id string) (*diskMeta, error) {
	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, err
	}
	var meta diskMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// newAssetID generates a cryptographically random asset ID.
func newAssetID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
