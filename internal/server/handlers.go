package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/ironsheep/image-space-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "space_view", "space_next").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000;
// arguments that do not decode into the tool's parameters return -32602.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var argErr *argumentsError
		if errors.As(err, &argErr) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Space Information
	case "space_info":
		return s.handleSpaceInfo(args)
	case "space_palette":
		return s.handleSpacePalette(args)

	// Viewing
	case "space_view":
		return s.handleSpaceView(args)
	case "space_cell_color":
		return s.handleSpaceCellColor(args)

	// Navigation
	case "space_next":
		return s.handleSpaceStepBy(args, 1)
	case "space_prev":
		return s.handleSpaceStepBy(args, -1)
	case "space_step":
		return s.handleSpaceStep(args)
	case "space_random":
		return s.handleSpaceFixed(args, s.randomID)
	case "space_min":
		return s.handleSpaceFixed(args, s.codec.Min)
	case "space_max":
		return s.handleSpaceFixed(args, s.codec.Max)

	// Codec
	case "space_validate":
		return s.handleSpaceValidate(args)
	case "space_decode":
		return s.handleSpaceDecode(args)
	case "space_encode":
		return s.handleSpaceEncode(args)
	case "space_image_info":
		return s.handleSpaceImageInfo(args)
	case "space_from_image":
		return s.handleSpaceFromImage(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// argumentsError reports tool arguments that are not valid JSON for the
// tool's parameters.
type argumentsError struct {
	err error
}

func (e *argumentsError) Error() string { return "invalid arguments: " + e.err.Error() }

func (e *argumentsError) Unwrap() error { return e.err }

// decodeArgs unmarshals tool arguments; absent arguments leave v untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &argumentsError{err: err}
	}
	return nil
}

// NavigationResult is returned by every tool that lands on an image.
type NavigationResult struct {
	// ID is the canonical identifier of the image.
	ID string `json:"id"`

	// Fallback is true when the requested identifier was invalid and the
	// first image was substituted.
	Fallback bool `json:"fallback,omitempty"`

	// Reason explains the fallback.
	Reason string `json:"reason,omitempty"`

	// Image is the rendered PNG, when requested.
	Image *imaging.RenderResult `json:"image,omitempty"`
}

// normalizeID left-pads a short identifier with the zero digit. Identifiers
// that are still invalid afterwards are replaced by the first image; the
// reason is returned alongside.
func (s *Server) normalizeID(id string) (string, string) {
	if n := s.codec.CellCount() - len(id); n > 0 {
		id = strings.Repeat(s.codec.Alphabet()[:1], n) + id
	}
	if _, err := s.codec.Decode(id); err != nil {
		log.Printf("Falling back to first image: %v", err)
		return s.codec.Min(), err.Error()
	}
	return id, ""
}

func (s *Server) navigation(id, reason string, render bool) (*NavigationResult, error) {
	result := &NavigationResult{ID: id, Fallback: reason != "", Reason: reason}
	if render {
		img, err := s.render(id)
		if err != nil {
			return nil, err
		}
		result.Image = img
	}
	return result, nil
}

func (s *Server) render(id string) (*imaging.RenderResult, error) {
	g, err := s.codec.ToGrid(id)
	if err != nil {
		return nil, err
	}
	return imaging.Render(g, s.codec.Shape(), s.codec.Steps(), s.renderSize)
}

// === Space Information Handlers ===

// SpaceInfo describes the served image space.
type SpaceInfo struct {
	Steps             int    `json:"steps"`
	Height            int    `json:"height"`
	Width             int    `json:"width"`
	Channels          int    `json:"channels"`
	CellCount         int    `json:"cell_count"`
	Alphabet          string `json:"alphabet"`
	NumColors         string `json:"num_colors"`
	Cardinality       string `json:"cardinality"`
	CardinalityExpr   string `json:"cardinality_expr"`
	CardinalityDigits int    `json:"cardinality_digits"`
	RenderSize        int    `json:"render_size"`
}

func (s *Server) handleSpaceInfo(args json.RawMessage) (interface{}, error) {
	shape := s.codec.Shape()
	steps := big.NewInt(int64(s.codec.Steps()))
	numColors := new(big.Int).Exp(steps, big.NewInt(int64(shape.Channels)), nil)
	cardinality := s.codec.Cardinality().String()

	return &SpaceInfo{
		Steps:             s.codec.Steps(),
		Height:            shape.Height,
		Width:             shape.Width,
		Channels:          shape.Channels,
		CellCount:         s.codec.CellCount(),
		Alphabet:          s.codec.Alphabet(),
		NumColors:         numColors.String(),
		Cardinality:       cardinality,
		CardinalityExpr:   fmt.Sprintf("%d^%d", s.codec.Steps(), s.codec.CellCount()),
		CardinalityDigits: len(cardinality),
		RenderSize:        s.renderSize,
	}, nil
}

type spacePaletteArgs struct {
	Limit *int `json:"limit"`
}

func (s *Server) handleSpacePalette(args json.RawMessage) (interface{}, error) {
	var a spacePaletteArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	limit := 256
	if a.Limit != nil {
		limit = *a.Limit
	}
	return imaging.Palette(s.codec.Steps(), s.codec.Shape().Channels, limit)
}

// === Viewing Handlers ===

type spaceIDArgs struct {
	ID     string `json:"id"`
	Render bool   `json:"render"`
}

func (s *Server) handleSpaceView(args json.RawMessage) (interface{}, error) {
	var a spaceIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	id, reason := s.normalizeID(a.ID)
	return s.navigation(id, reason, true)
}

type spaceCellColorArgs struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

func (s *Server) handleSpaceCellColor(args json.RawMessage) (interface{}, error) {
	var a spaceCellColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.codec.ToGrid(a.ID)
	if err != nil {
		return nil, err
	}
	return imaging.DescribeCell(g, s.codec.Shape(), s.codec.Steps(), a.X, a.Y)
}

// === Navigation Handlers ===

func (s *Server) handleSpaceStepBy(args json.RawMessage, delta int64) (interface{}, error) {
	var a spaceIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stepFrom(a.ID, big.NewInt(delta), a.Render)
}

type spaceStepArgs struct {
	ID     string `json:"id"`
	Delta  string `json:"delta"`
	Render bool   `json:"render"`
}

func (s *Server) handleSpaceStep(args json.RawMessage) (interface{}, error) {
	var a spaceStepArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	delta, ok := new(big.Int).SetString(strings.TrimSpace(a.Delta), 10)
	if !ok {
		return nil, fmt.Errorf("delta %q is not a decimal integer", a.Delta)
	}
	return s.stepFrom(a.ID, delta, a.Render)
}

// stepFrom moves from id by delta. An invalid id lands on the first image
// instead of failing.
func (s *Server) stepFrom(id string, delta *big.Int, render bool) (*NavigationResult, error) {
	id, reason := s.normalizeID(id)
	if reason != "" {
		return s.navigation(id, reason, render)
	}
	next, err := s.codec.StepBig(id, delta)
	if err != nil {
		return nil, err
	}
	return s.navigation(next, "", render)
}

type spaceRenderArgs struct {
	Render bool `json:"render"`
}

func (s *Server) handleSpaceFixed(args json.RawMessage, pick func() string) (interface{}, error) {
	var a spaceRenderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.navigation(pick(), "", a.Render)
}

// === Codec Handlers ===

// ValidateResult reports whether an identifier is canonical.
type ValidateResult struct {
	ID             string `json:"id"`
	Valid          bool   `json:"valid"`
	ExpectedLength int    `json:"expected_length"`
}

func (s *Server) handleSpaceValidate(args json.RawMessage) (interface{}, error) {
	var a spaceIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return &ValidateResult{
		ID:             a.ID,
		Valid:          s.codec.Validate(a.ID),
		ExpectedLength: s.codec.CellCount(),
	}, nil
}

// IndexResult pairs an identifier with its index.
type IndexResult struct {
	ID    string                `json:"id"`
	Index string                `json:"index"`
	Image *imaging.RenderResult `json:"image,omitempty"`
}

func (s *Server) handleSpaceDecode(args json.RawMessage) (interface{}, error) {
	var a spaceIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	n, err := s.codec.Decode(a.ID)
	if err != nil {
		return nil, err
	}
	return &IndexResult{ID: a.ID, Index: n.String()}, nil
}

type spaceEncodeArgs struct {
	Index  string `json:"index"`
	Render bool   `json:"render"`
}

func (s *Server) handleSpaceEncode(args json.RawMessage) (interface{}, error) {
	var a spaceEncodeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(a.Index), 10)
	if !ok {
		return nil, fmt.Errorf("index %q is not a decimal integer", a.Index)
	}
	id, err := s.codec.Encode(n)
	if err != nil {
		return nil, err
	}

	result := &IndexResult{ID: id, Index: n.String()}
	if a.Render {
		if result.Image, err = s.render(id); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type spaceImageArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
	Render bool   `json:"render"`
}

// loadArgs decodes image tool arguments, dropping the cached copy of the
// file when a reload is requested.
func (s *Server) loadArgs(args json.RawMessage) (*spaceImageArgs, error) {
	var a spaceImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		if s.debug {
			log.Printf("Evicting cached image %s", a.Path)
		}
		s.cache.Evict(a.Path)
	}
	return &a, nil
}

func (s *Server) handleSpaceImageInfo(args json.RawMessage) (interface{}, error) {
	a, err := s.loadArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path, s.codec.Shape())
}

func (s *Server) handleSpaceFromImage(args json.RawMessage) (interface{}, error) {
	a, err := s.loadArgs(args)
	if err != nil {
		return nil, err
	}
	g, err := imaging.LoadGrid(s.cache, a.Path, s.codec.Shape(), s.codec.Steps())
	if err != nil {
		return nil, err
	}
	id, err := s.codec.FromGrid(g)
	if err != nil {
		return nil, err
	}
	return s.navigation(id, "", a.Render)
}
