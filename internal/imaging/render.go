package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// MaxChannels is the largest channel count that maps onto a pixel
// (gray, gray+alpha, RGB, RGBA).
const MaxChannels = 4

// RenderResult contains a grid rendered as a PNG image.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	DataURL     string `json:"data_url"`
}

// levelValue returns the 8-bit intensity for a quantized level: the center of
// the level's bin, so that sampling the rendered pixel yields the level back.
func levelValue(level, steps int) uint8 {
	return uint8(math.Round((float64(level) + 0.5) / float64(steps) * 255))
}

// pixelAt returns the color of pixel (x, y) of a grid.
func pixelAt(g canvas.Grid, shape canvas.Shape, steps, x, y int) color.NRGBA {
	at := func(c int) uint8 {
		return levelValue(g[shape.Index(y, x, c)], steps)
	}

	switch shape.Channels {
	case 1:
		v := at(0)
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	case 2:
		v := at(0)
		return color.NRGBA{R: v, G: v, B: v, A: at(1)}
	case 3:
		return color.NRGBA{R: at(0), G: at(1), B: at(2), A: 255}
	default:
		return color.NRGBA{R: at(0), G: at(1), B: at(2), A: at(3)}
	}
}

func checkGrid(g canvas.Grid, shape canvas.Shape, steps int) error {
	if shape.Channels < 1 || shape.Channels > MaxChannels {
		return fmt.Errorf("cannot render %d channels, want 1-%d", shape.Channels, MaxChannels)
	}
	if len(g) != shape.Cells() {
		return fmt.Errorf("grid has %d cells, shape %s needs %d", len(g), shape, shape.Cells())
	}
	for i, v := range g {
		if v < 0 || v >= steps {
			return fmt.Errorf("cell %d value %d not in [0, %d)", i, v, steps)
		}
	}
	return nil
}

// ToImage rasterizes a grid at its native resolution, one pixel per
// (y, x) position.
func ToImage(g canvas.Grid, shape canvas.Shape, steps int) (*image.NRGBA, error) {
	if err := checkGrid(g, shape, steps); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, shape.Width, shape.Height))
	for y := 0; y < shape.Height; y++ {
		for x := 0; x < shape.Width; x++ {
			img.SetNRGBA(x, y, pixelAt(g, shape, steps, x, y))
		}
	}
	return img, nil
}

// Render rasterizes a grid and upscales it with nearest-neighbor sampling so
// that its longest side is size pixels. A size of 0 or less keeps the native
// resolution.
func Render(g canvas.Grid, shape canvas.Shape, steps, size int) (*RenderResult, error) {
	out, err := scaled(g, shape, steps, size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return &RenderResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		DataURL:     "data:image/png;base64," + encoded,
	}, nil
}

// Save rasterizes and scales a grid like Render and writes it to path. The
// file format follows the extension (.png, .jpg, .gif, .bmp, .tif).
func Save(g canvas.Grid, shape canvas.Shape, steps, size int, path string) error {
	out, err := scaled(g, shape, steps, size)
	if err != nil {
		return err
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func scaled(g canvas.Grid, shape canvas.Shape, steps, size int) (image.Image, error) {
	img, err := ToImage(g, shape, steps)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return img, nil
	}
	w, h := fitSize(shape.Width, shape.Height, size)
	return imaging.Resize(img, w, h, imaging.NearestNeighbor), nil
}

// fitSize scales (w, h) so the longer side equals size.
func fitSize(w, h, size int) (int, int) {
	if w >= h {
		return size, max(1, h*size/w)
	}
	return max(1, w*size/h), size
}
