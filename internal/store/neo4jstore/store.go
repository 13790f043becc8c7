// Package neo4jstore serves the wiki queries from a Neo4j database using the
// labels and relationship types of the 24 dataset: Character nodes,
// STARRED_AS, APPEARED_IN {episodes} and KILLED relationships.
package neo4jstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

const (
	listCharactersQuery = `
		MATCH (c:Character)
		RETURN c.name AS name
		ORDER BY c.name, id(c)
	`

	victimNationalitiesQuery = `
		MATCH (:Character)-[:KILLED]->(v:Character)
		WHERE v.nationality IS NOT NULL AND v.nationality <> ''
		RETURN v.nationality AS nationality, count(*) AS victims
		ORDER BY victims DESC, nationality ASC
	`

	findCharacterQuery = `
		MATCH (c:Character {name: $name})
		RETURN id(c) AS id, c.name AS name, c.nationality AS nationality
		ORDER BY id(c)
		LIMIT 1
	`

	actorQuery = `
		MATCH (a)-[:STARRED_AS]->(c:Character)
		WHERE id(c) = $id
		RETURN id(a) AS id, a.name AS name
		ORDER BY id(a)
		LIMIT 1
	`

	appearancesQuery = `
		MATCH (c:Character)-[r:APPEARED_IN]->(s)
		WHERE id(c) = $id
		RETURN s.name AS season, r.episodes AS episodes
		ORDER BY s.name, r.episodes, id(r)
	`

	victimsQuery = `
		MATCH (c:Character)-[:KILLED]->(v:Character)
		WHERE id(c) = $id
		RETURN id(v) AS id, v.name AS name, v.nationality AS nationality
		ORDER BY v.name, id(v)
	`
)

// Config holds the connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Store is a wiki.Store backed by a shared Neo4j driver. Each operation opens
// its own read session.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

var _ wiki.Store = (*Store)(nil)

// Open creates the driver and verifies that the database is reachable.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	auth := neo4j.NoAuth()
	if cfg.Password != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to reach neo4j at %s: %w", cfg.URI, err)
	}
	logger.Info("Connected to Neo4j", zap.String("uri", cfg.URI), zap.String("database", cfg.Database))
	return New(driver, cfg.Database, logger), nil
}

// New wraps an existing driver.
func New(driver neo4j.DriverWithContext, database string, logger *zap.Logger) *Store {
	return &Store{driver: driver, database: database, logger: logger}
}

// Close closes the driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
}

// collect runs a single read query and returns all its records.
func (s *Store) collect(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// ListCharacters implements wiki.Store.
func (s *Store) ListCharacters(ctx context.Context) ([]string, error) {
	records, err := s.collect(ctx, listCharactersQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, getString(record, "name"))
	}
	return names, nil
}

// VictimNationalities implements wiki.Store.
func (s *Store) VictimNationalities(ctx context.Context) ([]wiki.VictimNationality, error) {
	records, err := s.collect(ctx, victimNationalitiesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to rank victim nationalities: %w", err)
	}
	ranked := make([]wiki.VictimNationality, 0, len(records))
	for _, record := range records {
		ranked = append(ranked, wiki.VictimNationality{
			Nationality: getString(record, "nationality"),
			Victims:     getInt(record, "victims"),
		})
	}
	return ranked, nil
}

// FindCharacter implements wiki.Store.
func (s *Store) FindCharacter(ctx context.Context, name string) (*wiki.Character, error) {
	if err := wiki.CheckName(name); err != nil {
		return nil, err
	}
	records, err := s.collect(ctx, findCharacterQuery, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to find character %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, wiki.ErrNotFound
	}
	return &wiki.Character{
		UID:         strconv.FormatInt(getInt64(records[0], "id"), 10),
		Name:        getString(records[0], "name"),
		Nationality: getString(records[0], "nationality"),
	}, nil
}

// Profile implements wiki.Store. The three lookups share one read
// transaction so they see the same snapshot.
func (s *Store) Profile(ctx context.Context, c *wiki.Character) (*wiki.Profile, error) {
	id, err := strconv.ParseInt(c.UID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid neo4j id %q for %q: %w", c.UID, c.Name, err)
	}

	session := s.session(ctx)
	defer session.Close(ctx)

	params := map[string]any{"id": id}
	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		p := &wiki.Profile{Character: *c}

		actors, err := run(ctx, tx, actorQuery, params)
		if err != nil {
			return nil, err
		}
		if len(actors) > 0 {
			p.Actor = &wiki.Actor{
				UID:  strconv.FormatInt(getInt64(actors[0], "id"), 10),
				Name: getString(actors[0], "name"),
			}
		} else {
			s.logger.Warn("Character has no STARRED_AS relationship",
				zap.String("character", c.Name),
				zap.Int64("id", id),
			)
		}

		appearances, err := run(ctx, tx, appearancesQuery, params)
		if err != nil {
			return nil, err
		}
		for _, record := range appearances {
			p.Appearances = append(p.Appearances, wiki.Credit{
				Season:   getString(record, "season"),
				Episodes: getInt(record, "episodes"),
			})
		}

		victims, err := run(ctx, tx, victimsQuery, params)
		if err != nil {
			return nil, err
		}
		for _, record := range victims {
			p.Victims = append(p.Victims, wiki.Character{
				UID:         strconv.FormatInt(getInt64(record, "id"), 10),
				Name:        getString(record, "name"),
				Nationality: getString(record, "nationality"),
			})
		}
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load profile of %q: %w", c.Name, err)
	}
	return out.(*wiki.Profile), nil
}

func run(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

func getString(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func getInt(record *neo4j.Record, key string) int {
	return int(getInt64(record, key))
}
