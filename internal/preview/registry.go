// Package preview keeps transient thumbnails of selected images, addressed
// by preview:// URIs that must be revoked once superseded.
package preview

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/truelens/internal/model"
	"github.com/google/uuid"
)

// Scheme prefixes every preview URI.
const Scheme = "preview://"

// Store creates and releases previews.
type Store interface {
	Create(img model.SelectedImage) (string, error)
	Revoke(uri string)
}

// Registry is a concurrency-safe Store holding rendered thumbnails.
type Registry struct {
	entries map[string]string
	mu      sync.Mutex
	width   int
	height  int
}

// NewRegistry creates a registry rendering thumbnails of at most width x
// height terminal cells.
func NewRegistry(width, height int) *Registry {
	return &Registry{
		entries: make(map[string]string),
		width:   max(width, 1),
		height:  max(height, 1),
	}
}

// Create renders a thumbnail for img and returns its URI. Images that cannot
// be decoded still get a URI with a textual placeholder.
func (r *Registry) Create(img model.SelectedImage) (string, error) {
	rendered, err := Thumbnail(img.Data, r.width, r.height)
	if err != nil {
		slog.Debug("Preview unavailable", "image", img.Name, "error", err)
		rendered = fmt.Sprintf("[no preview for %s]", img.Name)
	}

	uri := Scheme + uuid.NewString()

	r.mu.Lock()
	r.entries[uri] = rendered
	r.mu.Unlock()

	return uri, nil
}

// Render returns the thumbnail for uri.
func (r *Registry) Render(uri string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.entries[uri]
	return s, ok
}

// Revoke releases uri. Unknown URIs are ignored.
func (r *Registry) Revoke(uri string) {
	if uri == "" {
		return
	}
	r.mu.Lock()
	delete(r.entries, uri)
	r.mu.Unlock()
}

// Len returns the number of live previews.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close releases every preview.
func (r *Registry) Close() {
	r.mu.Lock()
	clear(r.entries)
	r.mu.Unlock()
}
