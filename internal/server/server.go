package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/ironsheep/image-space-mcp/internal/canvas"
	"github.com/ironsheep/image-space-mcp/internal/imaging"
)

// Server handles MCP protocol communication
type Server struct {
	codec      *canvas.Codec
	cache      *imaging.ImageCache
	renderSize int
	debug      bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server for the image space described by cfg.
//
// It fails with canvas.ErrConfig when the space parameters are invalid.
func New(cfg Config) (*Server, error) {
	codec, err := canvas.New(cfg.Steps, cfg.Shape)
	if err != nil {
		return nil, err
	}
	if cfg.Shape.Channels > imaging.MaxChannels {
		return nil, fmt.Errorf("%w: %d channels cannot be rendered, want 1-%d",
			canvas.ErrConfig, cfg.Shape.Channels, imaging.MaxChannels)
	}

	var src *rand.PCG
	if cfg.Seed != nil {
		src = rand.NewPCG(*cfg.Seed, *cfg.Seed)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Server{
		codec:      codec,
		cache:      imaging.NewImageCache(),
		renderSize: cfg.RenderSize,
		debug:      cfg.Debug,
		rng:        rand.New(src),
	}, nil
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w
// until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if s.debug {
		log.Printf("request %v: %s", req.ID, req.Method)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "image-space-mcp",
				"version": "0.1.0",
			},
		},
	}
}

// randomID draws a random identifier; the shared source is not safe for
// concurrent use on its own.
func (s *Server) randomID() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.codec.Random(s.rng)
}
