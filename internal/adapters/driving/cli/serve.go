package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/api"
	"github.com/custodia-labs/ragqa/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  GET  /        health and whether a document is loaded
  POST /upload  multipart form with a "file" field (.txt), optional
                chunk_size and chunk_overlap query parameters
  POST /ask     {"question": "...", "top_k": 4}

The server shuts down gracefully on SIGINT or SIGTERM. Prompt templates
are reloaded when they change on disk.

Examples:
  ragqa serve
  ragqa serve --addr 127.0.0.1:9000
  curl -F file=@notes.txt localhost:8000/upload
  curl -d '{"question":"What is the capital of France?"}' localhost:8000/ask`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	qa, err := requireQA()
	if err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" {
		addr = appSettings.Server.Addr
	}

	server, err := api.New(api.Config{
		QA:                qa,
		ChunkDefaults:     chunkDefaults(),
		TopK:              defaultTopK(),
		MaxUploadBytes:    appSettings.Server.MaxUploadBytes,
		RequestsPerSecond: appSettings.Server.RequestsPerSecond,
		Burst:             appSettings.Server.Burst,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("ragqa listening on %s\n", addr)
	return serve(ctx, server, addr)
}

// serve runs the API and the prompt watcher until ctx ends or the API fails.
func serve(ctx context.Context, server *api.Server, addr string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx, addr)
	})

	if promptStore != nil {
		g.Go(func() error {
			if err := promptStore.Watch(gctx, nil); err != nil {
				logger.Warn("prompt hot reload disabled: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}
