// Package neo4jstore implements graphstore.Store against a live Neo4j
// instance via the official Bolt driver.
package neo4jstore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	recconfig "github.com/talentgraph/recommender/internal/config"
)

// Client wraps a neo4j.DriverWithContext with connection pooling settings
// tuned for the recommender's read-heavy query mix.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
}

// NewClient opens a pooled connection to the URI in cfg and verifies
// connectivity before returning.
func NewClient(cfg recconfig.GraphStoreConfig) (*Client, error) {
	const connectTimeout = 5 * time.Second

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *config.Config) {
			c.MaxConnectionPoolSize = 50
			c.ConnectionAcquisitionTimeout = connectTimeout
			c.SocketConnectTimeout = connectTimeout
		},
	)
	if err != nil {
		return nil, fmt.Errorf("neo4jstore: create driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jstore: verify connectivity: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = "neo4j"
	}

	return &Client{driver: driver, database: database, timeout: connectTimeout}, nil
}

// Close releases the driver's connection pool.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) read(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer func() { _ = session.Close(ctx) }()
	return session.ExecuteRead(ctx, work)
}
