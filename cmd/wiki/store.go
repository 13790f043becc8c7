package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/matthewmcneely/modusgraph"
	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/internal/store/memory"
	"github.com/mlwelles/modusGraph24Wiki/internal/store/neo4jstore"
	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

// StoreFlags select and configure the graph store backend.
type StoreFlags struct {
	Backend string `help:"Graph store backend (${enum})." default:"neo4j" enum:"neo4j,dgraph,memory" env:"WIKI_BACKEND"`

	Neo4jURI      string `name:"neo4j-uri" help:"Neo4j URI." default:"neo4j://localhost:7687" env:"WIKI_NEO4J_URI"`
	Neo4jUser     string `name:"neo4j-user" help:"Neo4j user." default:"neo4j" env:"WIKI_NEO4J_USER"`
	Neo4jPassword string `name:"neo4j-password" help:"Neo4j password; empty disables authentication." env:"WIKI_NEO4J_PASSWORD"`
	Neo4jDatabase string `name:"neo4j-database" help:"Neo4j database; empty uses the server default." env:"WIKI_NEO4J_DATABASE"`

	DgraphURI string `name:"dgraph-uri" help:"Dgraph URI, dgraph://host:port or file:///path." default:"dgraph://localhost:9080" env:"WIKI_DGRAPH_URI"`

	Dataset string `help:"YAML dataset for the memory backend." type:"path" env:"WIKI_DATASET"`
}

var errNoDataset = errors.New("the memory backend needs --dataset")

// Open connects to the selected backend. The returned func releases it.
func (f *StoreFlags) Open(ctx context.Context, logger *zap.Logger) (wiki.Store, func(), error) {
	switch f.Backend {
	case "neo4j":
		s, err := neo4jstore.Open(ctx, neo4jstore.Config{
			URI:      f.Neo4jURI,
			Username: f.Neo4jUser,
			Password: f.Neo4jPassword,
			Database: f.Neo4jDatabase,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(context.Background()); err != nil {
				logger.Warn("Failed to close Neo4j driver", zap.Error(err))
			}
		}, nil

	case "dgraph":
		c, err := wiki.New(f.DgraphURI, modusgraph.WithAutoSchema(true))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to Dgraph", zap.String("uri", f.DgraphURI))
		return c, c.Close, nil

	case "memory":
		if f.Dataset == "" {
			return nil, nil, errNoDataset
		}
		s, err := memory.Load(f.Dataset)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Loaded dataset", zap.String("path", f.Dataset))
		return s, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", f.Backend)
}
