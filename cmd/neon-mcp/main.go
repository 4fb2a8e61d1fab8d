package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ironsheep/neon-tubes/internal/config"
	"github.com/ironsheep/neon-tubes/internal/logger"
	"github.com/ironsheep/neon-tubes/internal/server"
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
			fmt.Printf("neon-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("neon-mcp - MCP server for neon tube rendering")
			fmt.Println()
			fmt.Println("Usage: neon-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  NEON_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  NEON_<SETTING>          Default for a render argument, e.g. NEON_COLOR=#00ffff")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// zap writes to stderr; stdout is for MCP protocol
	l, err := logger.New(logger.Verbose(os.Getenv("NEON_LOG_LEVEL")))
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	l.Debug("starting neon MCP server",
		zap.String("version", Version),
		zap.String("built", BuildTime),
		zap.String("commit", GitCommit))

	env, err := config.FromEnv(os.Getenv)
	if err != nil {
		l.Fatal("invalid environment", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(l, env)
	if err := srv.Run(logger.NewContext(ctx, l)); err != nil {
		l.Fatal("server error", zap.Error(err))
	}
}
