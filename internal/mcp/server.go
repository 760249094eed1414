// Package mcp provides an MCP (Model Context Protocol) server for casegraph.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/analyticase/casegraph/internal/config"
	"github.com/analyticase/casegraph/internal/runstore"
)

// Server wraps the MCP SDK server and provides casegraph-specific functionality.
type Server struct {
	server *sdk.Server
	runs   *runstore.RunStore
	config *config.Config
	root   string
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "casegraph")
	Version string // Server version
	Root    string // Project root directory
}

// NewServer creates a new MCP server with casegraph tools.
func NewServer(cfg *Config) (*Server, error) {
	appConfig, err := config.Load(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	runs, err := runstore.Open(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server: mcpServer,
		runs:   runs,
		config: appConfig,
		root:   cfg.Root,
	}

	if err := s.registerTools(); err != nil {
		runs.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	if err := s.registerResources(); err != nil {
		runs.Close()
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.runs.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.runs.Close()
}
