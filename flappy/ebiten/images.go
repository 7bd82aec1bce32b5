package ebiten

import (
	_ "image/png"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/flappybird/flappy"
)

// ImageCache resolves image handles to ebiten images, loading each file from
// the asset directory on first use. A handle that fails to load is reported
// once and resolves to nil from then on.
type ImageCache struct {
	dir    string
	logger *slog.Logger
	load   func(path string) (*ebiten.Image, error)

	images map[flappy.ImageHandle]*ebiten.Image
	failed map[flappy.ImageHandle]bool
}

func NewImageCache(dir string, logger *slog.Logger) *ImageCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageCache{
		dir:    dir,
		logger: logger,
		load:   loadImage,
		images: make(map[flappy.ImageHandle]*ebiten.Image),
		failed: make(map[flappy.ImageHandle]bool),
	}
}

func loadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

// Get returns the image for handle, or nil if it cannot be loaded.
func (c *ImageCache) Get(handle flappy.ImageHandle) *ebiten.Image {
	if handle == "" || c.failed[handle] {
		return nil
	}
	if img, ok := c.images[handle]; ok {
		return img
	}

	path := filepath.Join(c.dir, handle.String())
	img, err := c.load(path)
	if err != nil {
		c.failed[handle] = true
		c.logger.Warn("failed to load image", "path", path, "err", err)
		return nil
	}
	c.images[handle] = img
	return img
}
