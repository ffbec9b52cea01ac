package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/phany/internal/config"
	"github.com/ironsheep/phany/internal/imaging"
	"github.com/ironsheep/phany/internal/logging"
	"github.com/ironsheep/phany/internal/op"
	"github.com/ironsheep/phany/internal/server"
	"github.com/ironsheep/phany/internal/viewer"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("phany - image viewer")
	fmt.Println()
	fmt.Println("Usage: phany [options] [file]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug|info|warn|error    Log level (default info)\n", config.EnvLogLevel)
	fmt.Printf("  %s=30s                 Abort decodes that take longer\n", config.EnvDecodeTimeout)
	fmt.Printf("  %s=srgb-linearize,...        Operations applied after decoding\n", config.EnvPipeline)
	fmt.Printf("  %s=1                      Use the fast variant of each operation\n", config.EnvPipelineFast)
	fmt.Printf("  %s=1024x768                Default render size\n", config.EnvFrameSize)
	fmt.Println()
	fmt.Println("The viewer is driven by JSON-RPC requests on stdin; responses go to stdout.")
	fmt.Println("Without a file it shows a loading placeholder until viewer/open is called.")
}

func main() {
	var path string
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("phany %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		default:
			path = os.Args[1]
		}
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "phany: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, config.Unimplemented{})
	if err != nil {
		return err
	}

	// Logs go to stderr; stdout carries the protocol.
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.SetLogger(logging.New(os.Stderr, level))
	log := logging.Logger()
	log.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	registry := op.Builtin()
	pipeline, err := registry.Resolve(cfg.Pipeline)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", config.EnvPipeline, err)
	}

	server.Version = Version
	v := viewer.New(cfg, imaging.NewImageCache(), pipeline)
	srv := server.New(cfg, v, registry)
	log.Info("viewer ready", "title", v.Title())

	if path != "" {
		srv.Open(ctx, path)
	}
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
