package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// Sample reduces an arbitrary image to a quantized grid.
//
// The image is cropped around its center to the grid's aspect ratio and
// shrunk to Width x Height. Each channel sample s in [0,1] becomes
// floor(s*steps). Channel mapping:
//   - 1: luminance (0.3R + 0.6G + 0.1B)
//   - 2: luminance, alpha
//   - 3: R, G, B
//   - 4: R, G, B, alpha
//
// Color and luminance are read un-premultiplied. Fully transparent pixels
// sample as black in the color channels.
func Sample(img image.Image, shape canvas.Shape, steps int) (canvas.Grid, error) {
	if shape.Channels < 1 || shape.Channels > MaxChannels {
		return nil, fmt.Errorf("cannot sample %d channels, want 1-%d", shape.Channels, MaxChannels)
	}
	if shape.Height <= 0 || shape.Width <= 0 {
		return nil, fmt.Errorf("invalid grid shape %s", shape)
	}
	if steps < 2 {
		return nil, fmt.Errorf("steps must be at least 2, got %d", steps)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	thumb := imaging.Fill(img, shape.Width, shape.Height, imaging.Center, imaging.Box)

	var gray *image.RGBA
	if shape.Channels <= 2 {
		// Luminance ignores alpha, which has its own channel.
		opaque := imaging.Clone(thumb)
		for i := 3; i < len(opaque.Pix); i += 4 {
			opaque.Pix[i] = 0xff
		}
		gray = effect.Grayscale(opaque)
	}

	g := make(canvas.Grid, shape.Cells())
	for y := 0; y < shape.Height; y++ {
		for x := 0; x < shape.Width; x++ {
			px := thumb.At(x, y)
			col, _ := colorful.MakeColor(px)
			_, _, _, a16 := px.RGBA()
			alpha := float64(a16) / 0xffff

			var samples []float64
			switch shape.Channels {
			case 1:
				samples = []float64{float64(gray.RGBAAt(x, y).R) / 255}
			case 2:
				samples = []float64{float64(gray.RGBAAt(x, y).R) / 255, alpha}
			case 3:
				samples = []float64{col.R, col.G, col.B}
			default:
				samples = []float64{col.R, col.G, col.B, alpha}
			}

			for c, s := range samples {
				g[shape.Index(y, x, c)] = canvas.Quantize(s, steps)
			}
		}
	}
	return g, nil
}
