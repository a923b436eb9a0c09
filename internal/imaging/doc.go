// Package imaging turns grids of the image space into pictures and back.
//
// It is the rendering side of the canvas codec: the codec only deals in
// quantized cell values, while this package maps those values to pixels,
// encodes PNGs, and reduces arbitrary photos to a grid.
//
// # Pixel Mapping
//
// A grid of shape (H, W, C) renders as an H x W image. Channels map as:
//   - 1: gray
//   - 2: gray + alpha
//   - 3: RGB
//   - 4: RGBA
//
// Level v of a space with s steps is drawn at the center of its bin,
// round((v+0.5)/s*255), so Sample on a rendered grid returns the same grid.
//
// # Photo Intake
//
// Sample crops an image around its center to the grid's aspect ratio,
// shrinks it to the grid resolution, and quantizes each channel with
// floor(sample*steps).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless.
package imaging
