package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-transform-mcp/internal/config"
	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/server"
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
			fmt.Printf("image-transform-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-transform-mcp - MCP server for image scaling, rotation and re-encoding")
			fmt.Println()
			fmt.Println("Usage: image-transform-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug           Enable debug logging")
			fmt.Println("  IMAGE_MCP_MEMORY_FLOOR_MB=50        Working memory guaranteed before resampling")
			fmt.Println("  IMAGE_MCP_QUALITY=95                Default JPEG quality (1-100)")
			fmt.Println("  IMAGE_MCP_RESAMPLER=imaging         Resize backend: imaging or bild")
			fmt.Println("  IMAGE_MCP_FILTER=lanczos            Resampling filter")
			fmt.Println("  IMAGE_MCP_JPEG_BACKGROUND=#ffffff   Flatten transparency onto this colour for JPEG")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	debugOut := io.Discard
	if cfg.Debug() {
		debugOut = os.Stderr
		log.Printf("Image Transform MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: floor=%dMB quality=%d resampler=%s filter=%s", cfg.MemoryFloorMB, cfg.Quality, cfg.Resampler, cfg.Filter)
	}

	opts, err := cfg.ImagingOptions(log.New(debugOut, "", log.Ldate|log.Ltime))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	srv := server.New(imaging.NewProcessor(opts))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
