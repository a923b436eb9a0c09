package canvas

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shape is the (height, width, channels) layout of a grid.
type Shape struct {
	Height   int `json:"height"`
	Width    int `json:"width"`
	Channels int `json:"channels"`
}

// Cells returns Height*Width*Channels.
func (s Shape) Cells() int {
	return s.Height * s.Width * s.Channels
}

// Index returns the flattened offset of channel c of pixel (x, y).
func (s Shape) Index(y, x, c int) int {
	return (y*s.Width+x)*s.Channels + c
}

// String formats the shape as "HxWxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

func (s Shape) validate() error {
	if s.Height <= 0 || s.Width <= 0 || s.Channels <= 0 {
		return fmt.Errorf("%w: grid shape %s has a non-positive dimension", ErrConfig, s)
	}
	if s.Width > math.MaxInt/s.Height || s.Channels > math.MaxInt/(s.Height*s.Width) {
		return fmt.Errorf("%w: grid shape %s has too many cells", ErrConfig, s)
	}
	return nil
}

// ParseShape parses "HxWxC" (or "HxW", meaning one channel).
func ParseShape(v string) (Shape, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(v)), "x")
	if len(parts) != 2 && len(parts) != 3 {
		return Shape{}, fmt.Errorf("%w: shape %q must look like HxWxC", ErrConfig, v)
	}

	dims := []int{1, 1, 1}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Shape{}, fmt.Errorf("%w: shape %q: %v", ErrConfig, v, err)
		}
		dims[i] = n
	}

	s := Shape{Height: dims[0], Width: dims[1], Channels: dims[2]}
	if err := s.validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// Grid is a dense array of quantized cell values in flattened order.
type Grid []int

// Normalized returns the grid scaled to [0,1) by dividing each cell by steps.
func (g Grid) Normalized(steps int) []float64 {
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = float64(v) / float64(steps)
	}
	return out
}

// Quantize maps a continuous sample in [0,1] to a cell value,
// floor(sample*steps), clamped to [0, steps-1].
func Quantize(sample float64, steps int) int {
	switch {
	case math.IsNaN(sample), sample <= 0:
		return 0
	case sample >= 1:
		return steps - 1
	}
	return min(int(sample*float64(steps)), steps-1)
}
