// Package texture owns the panorama textures of an editing session and
// decodes TGA images.
package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// ID names a texture in an Arena. The zero ID is never allocated.
type ID uint32

// ErrUnknown is returned for IDs that were never allocated or were released.
var ErrUnknown = errors.New("unknown texture")

type entry struct {
	img     *image.NRGBA
	version uint64
}

// Arena maps IDs to images. Reads through View may run concurrently; Update
// and Replace are exclusive.
type Arena struct {
	mu      sync.RWMutex
	next    ID
	entries map[ID]*entry
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{entries: make(map[ID]*entry)}
}

// Create allocates a transparent w*h texture.
func (a *Arena) Create(w, h int) (ID, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("texture size %dx%d must be positive", w, h)
	}
	return a.Adopt(image.NewNRGBA(image.Rect(0, 0, w, h))), nil
}

// Adopt takes ownership of img. The caller must not modify it afterwards
// except through Update.
func (a *Arena) Adopt(img *image.NRGBA) ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.next++
	a.entries[a.next] = &entry{img: img, version: 1}
	return a.next
}

// Get returns the image for id. The image must be treated as read-only.
func (a *Arena) Get(id ID) (*image.NRGBA, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	e, ok := a.entries[id]
	if !ok {
		return nil, fmt.Errorf("texture %d: %w", id, ErrUnknown)
	}
	return e.img, nil
}

// Version returns a counter that grows every time the texture changes.
func (a *Arena) Version(id ID) uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if e, ok := a.entries[id]; ok {
		return e.version
	}
	return 0
}

// View calls fn with the texture under a read lock.
func (a *Arena) View(id ID, fn func(*image.NRGBA) error) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	e, ok := a.entries[id]
	if !ok {
		return fmt.Errorf("texture %d: %w", id, ErrUnknown)
	}
	return fn(e.img)
}

// Update calls fn with the texture under the write lock and bumps its version.
func (a *Arena) Update(id ID, fn func(*image.NRGBA) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[id]
	if !ok {
		return fmt.Errorf("texture %d: %w", id, ErrUnknown)
	}
	e.version++
	return fn(e.img)
}

// Replace swaps the image behind id.
func (a *Arena) Replace(id ID, img *image.NRGBA) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[id]
	if !ok {
		return fmt.Errorf("texture %d: %w", id, ErrUnknown)
	}
	e.img = img
	e.version++
	return nil
}

// Release frees id. Released IDs are not reused.
func (a *Arena) Release(id ID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.entries[id]; !ok {
		return fmt.Errorf("texture %d: %w", id, ErrUnknown)
	}
	delete(a.entries, id)
	return nil
}

// Len returns the number of live textures.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
