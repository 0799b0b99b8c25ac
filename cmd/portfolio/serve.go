package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/fetch"
	"github.com/blkdmnd/visual-thesis/internal/server"
	"github.com/blkdmnd/visual-thesis/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio HTTP server",
	Long:  `Start an HTTP server that renders the portfolio page and exposes the chat, alignment, export, contact and explainer endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	store, err := content.Default()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	deps := server.Deps{Content: store, LLM: client}
	if cfg.Fetch.UseBrowser {
		deps.Renderer = fetch.NewChromeRenderer()
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      ratelimit.NewConfig(cfg.Server.RateLimit, cfg.Server.RateBurst),
		Session:        cfg.Session,
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
