package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docindex/internal/mcpserver"
	"docindex/internal/store"
)

func main() {
	ttl := flag.Duration("doc-ttl", 0, "evict documents idle longer than this (0 = keep for the whole session)")
	flag.Parse()

	docs := store.New(*ttl)
	if *ttl > 0 {
		go func() {
			ticker := time.NewTicker(*ttl / 2)
			defer ticker.Stop()
			for range ticker.C {
				docs.Cleanup()
			}
		}()
	}

	mcpServer := server.NewMCPServer(
		"docindex-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpserver.RegisterTools(mcpServer, docs)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("docindex-mcp: %v", err)
	}
}
