// Package server implements the MCP (Model Context Protocol) server that
// exposes a space of quantized images.
//
// Every image in the space is a grid of Height x Width x Channels cells, each
// holding one of Steps levels. The server names each image by a fixed-length
// identifier and lets a client walk the space in order, jump by arbitrary
// offsets, pick random images, and render any of them as PNG.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Space Information:
//   - space_info: Steps, shape, alphabet and cardinality
//   - space_palette: Distinct pixel colors the space can show
//
// Viewing:
//   - space_view: Render an image by identifier
//   - space_cell_color: Levels and color of one pixel
//
// Navigation:
//   - space_next, space_prev: Neighbors on the ring of identifiers
//   - space_step: Move by any signed decimal offset
//   - space_random: Uniformly random image
//   - space_min, space_max: First and last images
//
// Codec:
//   - space_validate: Check an identifier
//   - space_decode, space_encode: Convert between identifiers and indices
//   - space_image_info: Size, format and sampled region of an image file
//   - space_from_image: Quantize an image file into the space
//
// Both image tools read files through a cache; pass reload=true to read a
// file that changed on disk.
//
// # Invalid Identifiers
//
// Navigation and viewing tools left-pad short identifiers with the zero digit.
// An identifier that is still invalid is replaced by the first image and the
// result carries fallback=true with the reason. Codec tools report invalid
// input as errors instead.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (arguments that do not
//     decode) or other standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv(os.Getenv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
