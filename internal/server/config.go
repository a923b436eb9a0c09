package server

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvSteps      = "IMAGE_SPACE_STEPS"
	EnvShape      = "IMAGE_SPACE_SHAPE"
	EnvRenderSize = "IMAGE_SPACE_RENDER_SIZE"
	EnvSeed       = "IMAGE_SPACE_SEED"
	EnvLogLevel   = "IMAGE_SPACE_LOG_LEVEL"
)

// Config holds the parameters of the served image space.
type Config struct {
	// Steps is the number of quantization levels per channel.
	Steps int

	// Shape is the grid layout of every image in the space.
	Shape canvas.Shape

	// RenderSize is the longest side, in pixels, of rendered previews.
	// Zero renders at grid resolution.
	RenderSize int

	// Seed fixes the random source used by space_random. Nil seeds from
	// the runtime's entropy.
	Seed *uint64

	// Debug enables verbose logging to stderr.
	Debug bool
}

// DefaultConfig returns 8 levels over 64x64 RGB rendered at 256 pixels.
func DefaultConfig() Config {
	return Config{
		Steps:      8,
		Shape:      canvas.Shape{Height: 64, Width: 64, Channels: 3},
		RenderSize: 256,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies any IMAGE_SPACE_*
// variables returned by getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv(EnvSteps); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %v", canvas.ErrConfig, EnvSteps, v, err)
		}
		cfg.Steps = n
	}

	if v := getenv(EnvShape); v != "" {
		shape, err := canvas.ParseShape(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvShape, err)
		}
		cfg.Shape = shape
	}

	if v := getenv(EnvRenderSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%w: %s=%q must be a non-negative integer", canvas.ErrConfig, EnvRenderSize, v)
		}
		cfg.RenderSize = n
	}

	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %v", canvas.ErrConfig, EnvSeed, v, err)
		}
		cfg.Seed = &seed
	}

	cfg.Debug = getenv(EnvLogLevel) == "debug"

	return cfg, nil
}
