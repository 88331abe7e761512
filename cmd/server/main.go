// Package main provides the entry point for the engineer-fit recommender
// MCP server.
//
// The server is designed to be spawned as a child process by an MCP
// client and communicates via stdio using the Model Context Protocol. It
// exposes a single tool, recommend-engineers, wrapping the Orchestrator
// pipeline.
//
// Environment variables:
//   - REC_CONFIG_FILE: path to a YAML config file (defaults to env-only)
//   - REC_TAXONOMY_CATALOGUE_PATH: path to the skill/domain catalogue
//   - REC_GRAPH_STORE_URI/USERNAME/PASSWORD/DATABASE: Neo4j connection
//   - DEBUG: set to "true" for verbose (file:line) logging
package main

import (
	"context"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	if os.Getenv("DEBUG") == "true" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Println("[main] starting in debug mode")
	}

	components, err := InitializeServer()
	if err != nil {
		log.Fatalf("[main] failed to initialize: %v", err)
	}
	defer func() {
		if err := components.Close(); err != nil {
			log.Printf("[main] warning: failed to close graph store: %v", err)
		}
	}()

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    components.Config.Server.Name,
		Version: components.Config.Server.Version,
	}, nil)
	log.Println("[main] created MCP server")

	registerTools(mcpServer, components)
	log.Println("[main] registered tool: recommend-engineers")

	transport := &mcp.StdioTransport{}
	log.Println("[main] starting MCP server over stdio")
	if err := mcpServer.Run(context.Background(), transport); err != nil {
		log.Fatalf("[main] server error: %v", err)
	}
}
