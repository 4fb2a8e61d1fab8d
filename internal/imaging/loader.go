package imaging

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/neon-tubes/internal/contour"
)

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads.
//
// The MCP server keeps one cache for its lifetime, so repeated contour or
// preview requests for the same source file decode it once. The CLI does
// not need one; Load works without it.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Staleness
//
// Each entry remembers the modification time and size of the file it was
// decoded from. Load stats the file on every call and decodes it again when
// either has changed, so an image edited on disk is never served stale.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(), or replaced by a fresh decode.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

type cacheEntry struct {
	img     image.Image
	modTime time.Time
	size    int64
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cacheEntry),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// A nil cache is valid and always reads from disk. Different paths to the
// same file (relative vs absolute) are separate cache entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a decodable PNG, JPEG, GIF, BMP or TIFF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	if c == nil {
		return Load(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		c.Evict(path)
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.img, nil
	}

	img, err := Load(path)
	if err != nil {
		c.Evict(path)
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = cacheEntry{img: img, modTime: info.ModTime(), size: info.Size()}
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Missing paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Load decodes the image at path, applying any EXIF orientation so the
// pixel grid matches what a viewer shows.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ReadSize reads the pixel dimensions from the image header without
// decoding the pixel data.
func ReadSize(path string) (contour.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return contour.Size{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return contour.Size{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return contour.Size{Width: cfg.Width, Height: cfg.Height}, nil
}
