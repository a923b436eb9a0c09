package imaging

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// CellColor describes one pixel of a grid: its quantized levels and the
// color it renders as.
type CellColor struct {
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Levels []int     `json:"levels"` // Cell values, one per channel
	Hex    string    `json:"hex"`    // Hex format "#rrggbb" (no alpha)
	RGB    RGBColor  `json:"rgb"`
	RGBA   RGBAColor `json:"rgba"`
	HSL    HSLColor  `json:"hsl"`
}

// DescribeCell returns the levels and rendered color of pixel (x, y).
//
// Coordinates are 0-based with origin at top-left; x must be in
// [0, Width) and y in [0, Height).
func DescribeCell(g canvas.Grid, shape canvas.Shape, steps, x, y int) (*CellColor, error) {
	if err := checkGrid(g, shape, steps); err != nil {
		return nil, err
	}
	if x < 0 || x >= shape.Width || y < 0 || y >= shape.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside grid bounds %dx%d", x, y, shape.Width, shape.Height)
	}

	levels := make([]int, shape.Channels)
	for c := range levels {
		levels[c] = g[shape.Index(y, x, c)]
	}

	px := pixelAt(g, shape, steps, x, y)
	return &CellColor{
		X:      x,
		Y:      y,
		Levels: levels,
		Hex:    toColorful(px.R, px.G, px.B).Hex(),
		RGB:    RGBColor{R: px.R, G: px.G, B: px.B},
		RGBA:   RGBAColor{R: px.R, G: px.G, B: px.B, A: px.A},
		HSL:    toHSL(px.R, px.G, px.B),
	}, nil
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// toHSL converts 8-bit RGB to whole-number HSL.
func toHSL(r, g, b uint8) HSLColor {
	h, s, l := toColorful(r, g, b).Hsl()
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// PaletteResult lists the distinct pixel colors a space can render.
type PaletteResult struct {
	// Total is the number of distinct colors: steps for gray spaces,
	// steps^3 for RGB spaces.
	Total int64 `json:"total"`

	// Colors holds at most the requested number of hex colors, in level
	// order with the last channel varying fastest.
	Colors []string `json:"colors"`

	// Truncated is true when Colors is shorter than Total.
	Truncated bool `json:"truncated"`
}

// Palette enumerates the colors produced by every combination of channel
// levels. Alpha is not part of the hex value, so a fourth channel does not
// add colors. At most limit colors are returned.
func Palette(steps, channels, limit int) (*PaletteResult, error) {
	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("cannot build palette for %d channels, want 1-%d", channels, MaxChannels)
	}
	if steps < 2 {
		return nil, fmt.Errorf("steps must be at least 2, got %d", steps)
	}

	colorChannels := channels
	if channels == 2 {
		colorChannels = 1
	}
	if colorChannels > 3 {
		colorChannels = 3
	}

	total := int64(1)
	for i := 0; i < colorChannels; i++ {
		total *= int64(steps)
	}

	n := total
	if limit >= 0 && int64(limit) < n {
		n = int64(limit)
	}

	colors := make([]string, 0, n)
	for i := int64(0); i < n; i++ {
		levels := make([]int, colorChannels)
		rest := i
		for c := colorChannels - 1; c >= 0; c-- {
			levels[c] = int(rest % int64(steps))
			rest /= int64(steps)
		}

		var r, g, b uint8
		if colorChannels == 1 {
			v := levelValue(levels[0], steps)
			r, g, b = v, v, v
		} else {
			r, g, b = levelValue(levels[0], steps), levelValue(levels[1], steps), levelValue(levels[2], steps)
		}
		colors = append(colors, toColorful(r, g, b).Hex())
	}

	return &PaletteResult{
		Total:     total,
		Colors:    colors,
		Truncated: n < total,
	}, nil
}
