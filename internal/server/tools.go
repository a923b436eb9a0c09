package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

var renderProperty = map[string]interface{}{
	"type":        "boolean",
	"description": "Also return the image as a base64 PNG. Default false",
	"default":     false,
}

var reloadProperty = map[string]interface{}{
	"type":        "boolean",
	"description": "Read the file from disk again instead of using the cached copy. Default false",
	"default":     false,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Space Information
		{
			Name:        "space_info",
			Description: "Describe the image space: quantization steps, grid shape, identifier length, alphabet, and the total number of images.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "space_palette",
			Description: "List the distinct pixel colors an image in this space can contain, as hex strings.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return (default 256)",
						"default":     256,
					},
				},
			},
		},

		// Viewing
		{
			Name:        "space_view",
			Description: "Render the image with the given identifier. Short identifiers are left-padded with the zero digit; invalid ones fall back to the first image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image identifier"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "space_cell_color",
			Description: "Get the quantized levels and rendered color of one pixel of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image identifier"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"id", "x", "y"},
			},
		},

		// Navigation
		{
			Name:        "space_next",
			Description: "Identifier of the image after the given one. Wraps from the last image to the first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":     idProperty("Image identifier"),
					"render": renderProperty,
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "space_prev",
			Description: "Identifier of the image before the given one. Wraps from the first image to the last.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":     idProperty("Image identifier"),
					"render": renderProperty,
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "space_step",
			Description: "Move any number of images forward (positive delta) or backward (negative delta), wrapping around the space.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Image identifier"),
					"delta": map[string]interface{}{
						"type":        "string",
						"description": "Signed decimal integer of any size, e.g. \"-1\" or \"1000000000000000000000\"",
					},
					"render": renderProperty,
				},
				"required": []string{"id", "delta"},
			},
		},
		{
			Name:        "space_random",
			Description: "Identifier of a uniformly random image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"render": renderProperty,
				},
			},
		},
		{
			Name:        "space_min",
			Description: "Identifier of the first image (all cells at level 0).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"render": renderProperty,
				},
			},
		},
		{
			Name:        "space_max",
			Description: "Identifier of the last image (all cells at the highest level).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"render": renderProperty,
				},
			},
		},

		// Codec
		{
			Name:        "space_validate",
			Description: "Check whether a string is a canonical identifier of this space (exact length, valid digits).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Candidate identifier"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "space_decode",
			Description: "Convert a canonical identifier to its decimal index in the enumeration.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty("Canonical image identifier"),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "space_encode",
			Description: "Convert a decimal index in [0, cardinality) to its canonical identifier.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "string",
						"description": "Decimal index of any size",
					},
					"render": renderProperty,
				},
				"required": []string{"index"},
			},
		},
		{
			Name:        "space_image_info",
			Description: "Report an image file's size, format and the centered region that space_from_image would sample for this space's grid shape.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG or GIF file",
					},
					"reload": reloadProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "space_from_image",
			Description: "Find the identifier closest to an image file: center-crop to the grid's aspect ratio, shrink to grid size, and quantize each channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG or GIF file",
					},
					"reload": reloadProperty,
					"render": renderProperty,
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
