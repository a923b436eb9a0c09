package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func decodeRender(t *testing.T, r *RenderResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	return img
}

func TestLevelValue(t *testing.T) {
	tests := []struct {
		level, steps int
		want         uint8
	}{
		{0, 2, 64},
		{1, 2, 191},
		{0, 8, 16},
		{7, 8, 239},
	}
	for _, tt := range tests {
		if got := levelValue(tt.level, tt.steps); got != tt.want {
			t.Errorf("levelValue(%d, %d): got %d, want %d", tt.level, tt.steps, got, tt.want)
		}
	}
}

func TestToImage(t *testing.T) {
	shape := canvas.Shape{Height: 1, Width: 2, Channels: 3}
	img, err := ToImage(canvas.Grid{7, 0, 0, 0, 0, 7}, shape, 8)
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}

	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{239, 16, 16, 255}) {
		t.Errorf("pixel (0,0): got %v, want {239 16 16 255}", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{16, 16, 239, 255}) {
		t.Errorf("pixel (1,0): got %v, want {16 16 239 255}", got)
	}
}

func TestToImage_ChannelLayouts(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		grid     canvas.Grid
		want     color.NRGBA
	}{
		{"gray", 1, canvas.Grid{1}, color.NRGBA{191, 191, 191, 255}},
		{"gray alpha", 2, canvas.Grid{1, 0}, color.NRGBA{191, 191, 191, 64}},
		{"rgb", 3, canvas.Grid{1, 0, 1}, color.NRGBA{191, 64, 191, 255}},
		{"rgba", 4, canvas.Grid{0, 1, 0, 1}, color.NRGBA{64, 191, 64, 191}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ToImage(tt.grid, canvas.Shape{Height: 1, Width: 1, Channels: tt.channels}, 2)
			if err != nil {
				t.Fatalf("ToImage failed: %v", err)
			}
			if got := img.NRGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToImage_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		grid  canvas.Grid
		shape canvas.Shape
	}{
		{"too many channels", make(canvas.Grid, 5), canvas.Shape{Height: 1, Width: 1, Channels: 5}},
		{"wrong cell count", canvas.Grid{0, 0}, canvas.Shape{Height: 1, Width: 1, Channels: 3}},
		{"value too large", canvas.Grid{8}, canvas.Shape{Height: 1, Width: 1, Channels: 1}},
		{"negative value", canvas.Grid{-1}, canvas.Shape{Height: 1, Width: 1, Channels: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToImage(tt.grid, tt.shape, 8); err == nil {
				t.Error("ToImage should fail")
			}
		})
	}
}

func TestRender(t *testing.T) {
	shape := canvas.Shape{Height: 2, Width: 2, Channels: 3}
	g := canvas.Grid{
		7, 0, 0, 0, 7, 0,
		0, 0, 7, 7, 7, 7,
	}

	result, err := Render(g, shape, 8, 256)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if result.Width != 256 || result.Height != 256 {
		t.Errorf("dimensions: got %dx%d, want 256x256", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if !strings.HasPrefix(result.DataURL, "data:image/png;base64,") {
		t.Errorf("DataURL has wrong prefix: %.30s", result.DataURL)
	}

	img := decodeRender(t, result)
	r, gr, b, _ := img.At(200, 200).RGBA()
	if uint8(r>>8) != 239 || uint8(gr>>8) != 239 || uint8(b>>8) != 239 {
		t.Errorf("bottom-right block: got (%d,%d,%d), want white level", r>>8, gr>>8, b>>8)
	}
	r, gr, b, _ = img.At(10, 10).RGBA()
	if uint8(r>>8) != 239 || uint8(gr>>8) != 16 || uint8(b>>8) != 16 {
		t.Errorf("top-left block: got (%d,%d,%d), want red level", r>>8, gr>>8, b>>8)
	}
}

func TestRender_NativeAndAspect(t *testing.T) {
	g := make(canvas.Grid, 2*4)

	native, err := Render(g, canvas.Shape{Height: 2, Width: 4, Channels: 1}, 4, 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if native.Width != 4 || native.Height != 2 {
		t.Errorf("native: got %dx%d, want 4x2", native.Width, native.Height)
	}

	wide, err := Render(g, canvas.Shape{Height: 2, Width: 4, Channels: 1}, 4, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if wide.Width != 100 || wide.Height != 50 {
		t.Errorf("wide: got %dx%d, want 100x50", wide.Width, wide.Height)
	}

	tall, err := Render(g, canvas.Shape{Height: 4, Width: 2, Channels: 1}, 4, 100)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if tall.Width != 50 || tall.Height != 100 {
		t.Errorf("tall: got %dx%d, want 50x100", tall.Width, tall.Height)
	}
}

func TestSave_LoadsBackAsSameGrid(t *testing.T) {
	shape := canvas.Shape{Height: 2, Width: 3, Channels: 3}
	g := canvas.Grid{
		0, 1, 2, 3, 4, 5, 6, 7, 0,
		7, 7, 7, 1, 3, 5, 2, 4, 6,
	}
	path := filepath.Join(t.TempDir(), "grid.png")

	if err := Save(g, shape, 8, 60, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadGrid(NewImageCache(), path, shape, 8)
	if err != nil {
		t.Fatalf("LoadGrid failed: %v", err)
	}
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	g := canvas.Grid{0}
	shape := canvas.Shape{Height: 1, Width: 1, Channels: 1}

	if err := Save(g, shape, 2, 0, filepath.Join(t.TempDir(), "grid.xyz")); err == nil {
		t.Error("Save should fail for an unsupported extension")
	}
}
