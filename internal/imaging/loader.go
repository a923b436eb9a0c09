package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict(), which
// space_from_image does when asked to reload a file that changed on disk.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, and GIF. The image is cached using the exact
// path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// LoadGrid loads the image at path through the cache and samples it down to
// a quantized grid of the given shape.
func LoadGrid(cache *ImageCache, path string, shape canvas.Shape, steps int) (canvas.Grid, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	g, err := Sample(img, shape, steps)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", path, err)
	}
	return g, nil
}

// Region is a rectangle in source image pixels.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageInfo describes an image file before it is sampled into a grid.
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"`
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`

	// Sampled is the centered region Sample keeps for a grid of the
	// requested shape; the rest of the image is cropped away.
	Sampled Region `json:"sampled"`
}

// LoadImageInfo loads an image through the cache and reports its size,
// format and the part of it that would be sampled into a grid of shape.
//
// The format is determined by file extension (png, jpeg, gif, or unknown).
func LoadImageInfo(cache *ImageCache, path string, shape canvas.Shape) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	b := img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
		Sampled:       centerCrop(b.Dx(), b.Dy(), shape.Width, shape.Height),
	}, nil
}

// centerCrop returns the largest w x h region with the aspect ratio of
// gridW x gridH, centered in the image.
func centerCrop(w, h, gridW, gridH int) Region {
	cw, ch := w, h
	if w*gridH > h*gridW {
		cw = max(1, h*gridW/gridH)
	} else {
		ch = max(1, w*gridH/gridW)
	}
	return Region{X: (w - cw) / 2, Y: (h - ch) / 2, Width: cw, Height: ch}
}
