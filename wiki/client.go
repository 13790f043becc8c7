package wiki

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matthewmcneely/modusgraph"
)

// Client is a Store backed by Dgraph through modusgraph. The graph types in
// this package define the schema; queries are plain DQL so the client never
// mutates the graph.
type Client struct {
	conn modusgraph.Client
}

var _ Store = (*Client)(nil)

// New opens a Dgraph store. uri is file:///path for an embedded database or
// dgraph://host:port for a remote cluster.
func New(uri string, opts ...modusgraph.ClientOpt) (*Client, error) {
	conn, err := modusgraph.NewClient(uri, opts...)
	if err != nil {
		return nil, fmt.Errorf("open dgraph %s: %w", uri, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	c.conn.Close()
}

// QueryRaw runs a DQL query and returns the JSON response.
func (c *Client) QueryRaw(ctx context.Context, query string, vars map[string]string) ([]byte, error) {
	return c.conn.QueryRaw(ctx, query, vars)
}

const listCharactersQuery = `{
	q(func: type(Character), orderasc: name) {
		name
	}
}`

const victimNationalitiesQuery = `{
	q(func: type(Character)) @filter(has(killed)) {
		killed {
			nationality
		}
	}
}`

// eq results come back in uid order, so first: 1 keeps the lowest uid.
const findCharacterQuery = `query find($name: string) {
	q(func: eq(name, $name), first: 1) @filter(type(Character)) {
		uid
		name
		nationality
	}
}`

const profileQuery = `query profile($id: string) {
	q(func: uid($id)) @filter(type(Character)) {
		uid
		name
		nationality
		playedBy: ~starred_as (first: 1) {
			uid
			name
		}
		appearances: appeared_in {
			uid
			episodes: appearance.episodes
			season: appearance.season {
				name
			}
		}
		killed (orderasc: name) {
			uid
			name
			nationality
		}
	}
}`

type characterResponse struct {
	Q []Character `json:"q"`
}

func (c *Client) query(ctx context.Context, op, query string, vars map[string]string) (*characterResponse, error) {
	raw, err := c.conn.QueryRaw(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var resp characterResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &resp, nil
}

// ListCharacters implements Store.
func (c *Client) ListCharacters(ctx context.Context) ([]string, error) {
	resp, err := c.query(ctx, "list characters", listCharactersQuery, nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Q))
	for _, ch := range resp.Q {
		names = append(names, ch.Name)
	}
	return names, nil
}

// VictimNationalities implements Store. DQL has no global group-by over
// edges, so the counting happens here.
func (c *Client) VictimNationalities(ctx context.Context) ([]VictimNationality, error) {
	resp, err := c.query(ctx, "victim nationalities", victimNationalitiesQuery, nil)
	if err != nil {
		return nil, err
	}
	return countVictims(resp.Q), nil
}

func countVictims(killers []Character) []VictimNationality {
	counts := make(map[string]int)
	for _, killer := range killers {
		for _, victim := range killer.Killed {
			counts[victim.Nationality]++
		}
	}
	return RankNationalities(counts)
}

// FindCharacter implements Store.
func (c *Client) FindCharacter(ctx context.Context, name string) (*Character, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	resp, err := c.query(ctx, "find character", findCharacterQuery, map[string]string{"$name": name})
	if err != nil {
		return nil, err
	}
	if len(resp.Q) == 0 {
		return nil, ErrNotFound
	}
	ch := resp.Q[0]
	return &ch, nil
}

// Profile implements Store.
func (c *Client) Profile(ctx context.Context, ch *Character) (*Profile, error) {
	resp, err := c.query(ctx, "character profile", profileQuery, map[string]string{"$id": ch.UID})
	if err != nil {
		return nil, err
	}
	if len(resp.Q) == 0 {
		return nil, ErrNotFound
	}
	return buildProfile(resp.Q[0]), nil
}

func buildProfile(ch Character) *Profile {
	p := &Profile{
		Character: Character{UID: ch.UID, Name: ch.Name, Nationality: ch.Nationality},
		Victims:   ch.Killed,
	}
	if len(ch.PlayedBy) > 0 {
		actor := ch.PlayedBy[0]
		p.Actor = &actor
	}
	for _, a := range ch.Appearances {
		credit := Credit{Episodes: a.Episodes}
		if len(a.Season) > 0 {
			credit.Season = a.Season[0].Name
		}
		p.Appearances = append(p.Appearances, credit)
	}
	SortCredits(p.Appearances)
	return p
}
