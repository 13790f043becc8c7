package neo4jstore

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

func TestRecordHelpers(t *testing.T) {
	record := &neo4j.Record{
		Keys:   []string{"name", "victims", "nullable", "small"},
		Values: []any{"British", int64(3), nil, 7},
	}

	assert.Equal(t, "British", getString(record, "name"))
	assert.Equal(t, "", getString(record, "victims"))
	assert.Equal(t, "", getString(record, "nullable"))
	assert.Equal(t, "", getString(record, "missing"))
	assert.Equal(t, 3, getInt(record, "victims"))
	assert.Equal(t, int64(7), getInt64(record, "small"))
	assert.Equal(t, 0, getInt(record, "name"))
	assert.Equal(t, 0, getInt(record, "missing"))
}

func TestProfileRejectsForeignID(t *testing.T) {
	s := New(nil, "", zap.NewNop())

	_, err := s.Profile(context.Background(), &wiki.Character{UID: "0x2a", Name: "Jack Bauer"})

	assert.Error(t, err)
}

func TestFindCharacterEmptyName(t *testing.T) {
	s := New(nil, "", zap.NewNop())

	_, err := s.FindCharacter(context.Background(), "")

	assert.ErrorIs(t, err, wiki.ErrEmptyName)
}

// --- Integration tests, gated on NEO4J_TEST_URI ---

func skipIfNoNeo4j(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("NEO4J_TEST_URI") == "" {
		t.Skip("Skipping: NEO4J_TEST_URI not set")
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, Config{
		URI:      os.Getenv("NEO4J_TEST_URI"),
		Username: "neo4j",
		Password: os.Getenv("NEO4J_TEST_PASSWORD"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	return s
}

var (
	seedOnce sync.Once
	seedErr  error
)

// seedCypher replaces the fixture subgraph. Fixture nodes carry a fixture
// property so reruns only remove what they created.
const seedCypher = `
	MATCH (n {fixture: true}) DETACH DELETE n
	WITH count(*) AS cleared
	CREATE (d1:Season {name: 'Day 1', fixture: true})
	CREATE (d2:Season {name: 'Day 2', fixture: true})
	CREATE (jack:Character {name: 'Jack Bauer', nationality: 'American', fixture: true})
	CREATE (nina:Character {name: 'Nina Myers', nationality: 'American', fixture: true})
	CREATE (drazen:Character {name: 'Victor Drazen', nationality: 'Serbian', fixture: true})
	CREATE (andre:Character {name: 'Andre Drazen', nationality: 'Serbian', fixture: true})
	CREATE (teri:Character {name: 'Teri Bauer', nationality: 'American', fixture: true})
	CREATE (extra:Character {name: 'Unnamed Henchman', fixture: true})
	CREATE (:Actor {name: 'Kiefer Sutherland', fixture: true})-[:STARRED_AS]->(jack)
	CREATE (:Actor {name: 'Sarah Clarke', fixture: true})-[:STARRED_AS]->(nina)
	CREATE (:Actor {name: 'Dennis Hopper', fixture: true})-[:STARRED_AS]->(drazen)
	CREATE (jack)-[:APPEARED_IN {episodes: 24}]->(d2)
	CREATE (jack)-[:APPEARED_IN {episodes: 24}]->(d1)
	CREATE (nina)-[:APPEARED_IN {episodes: 24}]->(d1)
	CREATE (jack)-[:KILLED]->(drazen)
	CREATE (jack)-[:KILLED]->(andre)
	CREATE (jack)-[:KILLED]->(extra)
	CREATE (nina)-[:KILLED]->(teri)
`

func seed(t *testing.T, s *Store) {
	t.Helper()
	seedOnce.Do(func() {
		ctx := context.Background()
		session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, seedErr = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			result, err := tx.Run(ctx, seedCypher, nil)
			if err != nil {
				return nil, err
			}
			return result.Consume(ctx)
		})
	})
	require.NoError(t, seedErr, "seed data")
}

func TestIntegrationListCharacters(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)
	seed(t, s)

	names, err := s.ListCharacters(context.Background())

	require.NoError(t, err)
	assert.True(t, sort.StringsAreSorted(names), "names not sorted: %v", names)
	assert.Contains(t, names, "Jack Bauer")
	assert.Contains(t, names, "Unnamed Henchman")
}

func TestIntegrationVictimNationalities(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)
	seed(t, s)

	ranked, err := s.VictimNationalities(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i].Victims, ranked[i-1].Victims)
	}
	for _, r := range ranked {
		assert.NotEmpty(t, r.Nationality)
	}
}

func TestIntegrationProfile(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()

	ch, err := s.FindCharacter(ctx, "Jack Bauer")
	require.NoError(t, err)
	assert.Equal(t, "American", ch.Nationality)

	p, err := s.Profile(ctx, ch)
	require.NoError(t, err)
	require.NotNil(t, p.Actor)
	assert.Equal(t, "Kiefer Sutherland", p.Actor.Name)
	assert.Equal(t, []wiki.Credit{
		{Season: "Day 1", Episodes: 24},
		{Season: "Day 2", Episodes: 24},
	}, p.Appearances)
	require.Len(t, p.Victims, 3)
	assert.Equal(t, "Andre Drazen", p.Victims[0].Name)
	assert.Equal(t, "Unnamed Henchman", p.Victims[1].Name)
	assert.Equal(t, "Victor Drazen", p.Victims[2].Name)
}

func TestIntegrationProfileWithoutActor(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()

	ch, err := s.FindCharacter(ctx, "Unnamed Henchman")
	require.NoError(t, err)

	p, err := s.Profile(ctx, ch)
	require.NoError(t, err)
	assert.Nil(t, p.Actor)
}

func TestIntegrationFindCharacterNotFound(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)
	seed(t, s)

	_, err := s.FindCharacter(context.Background(), "jack bauer")

	assert.ErrorIs(t, err, wiki.ErrNotFound)
}
