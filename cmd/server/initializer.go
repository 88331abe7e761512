package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/talentgraph/recommender/internal/config"
	"github.com/talentgraph/recommender/internal/graphload"
	"github.com/talentgraph/recommender/internal/graphstore"
	"github.com/talentgraph/recommender/internal/graphstore/cached"
	"github.com/talentgraph/recommender/internal/graphstore/neo4jstore"
	"github.com/talentgraph/recommender/internal/inference"
	"github.com/talentgraph/recommender/internal/orchestration"
	"github.com/talentgraph/recommender/internal/similarity"
	"github.com/talentgraph/recommender/internal/taxonomy"
)

// ServerComponents holds every initialized dependency main needs to run
// the MCP server. Extracted from main so tests can exercise wiring
// without also starting a stdio transport.
type ServerComponents struct {
	Config       *config.Config
	Client       *neo4jstore.Client
	Store        graphstore.Store
	Orchestrator *orchestration.Orchestrator
}

// InitializeServer loads configuration, connects to the GraphStore,
// builds every pipeline component, and assembles the Orchestrator.
func InitializeServer() (*ServerComponents, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Printf("[init] loaded configuration for environment %q", cfg.Server.Environment)

	client, err := neo4jstore.NewClient(cfg.GraphStore)
	if err != nil {
		return nil, fmt.Errorf("connect to graph store: %w", err)
	}
	log.Printf("[init] connected to graph store at %s", cfg.GraphStore.URI)

	var store graphstore.Store = cached.New(
		neo4jstore.NewStore(client),
		cfg.Performance.GraphCacheSize,
		time.Duration(cfg.Performance.GraphCacheTTLMinutes)*time.Minute,
		nil,
	)
	log.Printf("[init] wrapped graph store with a %d-entry, %dm cache", cfg.Performance.GraphCacheSize, cfg.Performance.GraphCacheTTLMinutes)

	skillGraph, err := graphload.LoadSkillGraph(context.Background(), store)
	if err != nil {
		_ = client.Close(context.Background())
		return nil, fmt.Errorf("load skill graph: %w", err)
	}
	log.Printf("[init] loaded skill graph: %d nodes, acyclic", len(skillGraph.Nodes))

	domainGraph, err := graphload.LoadDomainGraph(context.Background(), store)
	if err != nil {
		_ = client.Close(context.Background())
		return nil, fmt.Errorf("load domain graph: %w", err)
	}
	log.Printf("[init] loaded domain graph: %d nodes, acyclic", len(domainGraph.Nodes))

	known, err := taxonomy.LoadCatalogue(cfg.Taxonomy.CataloguePath)
	if err != nil {
		_ = client.Close(context.Background())
		return nil, fmt.Errorf("load taxonomy catalogue: %w", err)
	}
	if cfg.Taxonomy.CataloguePath == "" {
		log.Println("[init] no taxonomy catalogue configured, relying on graph synonyms and fuzzy match alone")
	} else {
		log.Printf("[init] loaded taxonomy catalogue from %s (%d entries)", cfg.Taxonomy.CataloguePath, len(known))
	}
	resolver := taxonomy.New(store, known)

	engine := inference.New(inference.DefaultRules(), cfg.Inference.MaxIterations)
	scorer := similarity.NewScorer(store, cfg.Similarity)

	orch := orchestration.New(store, resolver, engine, scorer, cfg)
	log.Println("[init] orchestrator assembled")

	return &ServerComponents{Config: cfg, Client: client, Store: store, Orchestrator: orch}, nil
}

// Close releases every resource InitializeServer opened.
func (c *ServerComponents) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close(context.Background())
}

// loadConfig reads REC_CONFIG_FILE if set, otherwise falls back to
// environment overrides on top of defaults.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("REC_CONFIG_FILE"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
