// Package media stores binary assets referenced by elements, such as
// images embedded in markdown bodies. Assets are written once by the host
// script and served to the front end by ID until removed.
package media

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when an asset doesn't exist.
var ErrNotFound = errors.New("media: asset not found")

// ErrTooLarge is returned when an asset exceeds the size limit.
var ErrTooLarge = errors.New("media: asset too large")

// Asset describes a stored asset.
type Asset struct {
	// ID is the unique identifier for this asset.
	ID string

	// ContentType is the MIME type of the asset.
	ContentType string

	// Size is the asset size in bytes.
	Size int64

	// Reader provides access to the asset contents. The caller must
	// close it.
	Reader io.ReadCloser
}

// Close closes the asset reader if open.
func (a *Asset) Close() error {
	if a.Reader != nil {
		return a.Reader.Close()
	}
	return nil
}

// Store is the interface for asset storage backends.
type Store interface {
	// Save stores an asset and returns its ID.
	Save(ctx context.Context, contentType string, size int64, r io.Reader) (id string, err error)

	// Open retrieves an asset by ID.
	Open(ctx context.Context, id string) (*Asset, error)

	// Remove deletes an asset by ID. Removing a missing asset is not
	// an error.
	Remove(ctx context.Context, id string) error

	// Cleanup removes assets older than maxAge. Call periodically.
	Cleanup(ctx context.Context, maxAge time.Duration) error
}
