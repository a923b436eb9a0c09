package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-space-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-space-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-space-mcp - MCP server for browsing the space of quantized images")
			fmt.Println()
			fmt.Println("Usage: image-space-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_SPACE_STEPS=8            Quantization levels per channel (2-62)")
			fmt.Println("  IMAGE_SPACE_SHAPE=64x64x3      Grid shape as HxWxC (C is 1 to 4)")
			fmt.Println("  IMAGE_SPACE_RENDER_SIZE=256    Longest side of rendered previews, 0 for native")
			fmt.Println("  IMAGE_SPACE_SEED=<n>           Fix the random image sequence")
			fmt.Println("  IMAGE_SPACE_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug {
		log.Printf("Image Space MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Space: %d steps over %s, previews at %d px", cfg.Steps, cfg.Shape, cfg.RenderSize)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
