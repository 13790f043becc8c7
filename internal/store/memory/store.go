// Package memory is a read-only in-process wiki.Store loaded from a YAML
// dataset. It backs local runs without a graph database and the handler
// tests.
package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

// Dataset is the YAML document layout.
//
//	characters:
//	  - name: Jack Bauer
//	    nationality: American
//	    played_by: Kiefer Sutherland
//	    appearances:
//	      - season: Day 1
//	        episodes: 24
//	    killed: [Victor Drazen]
type Dataset struct {
	Characters []CharacterRecord `yaml:"characters" validate:"dive"`
}

type CharacterRecord struct {
	Name        string             `yaml:"name" validate:"required"`
	Nationality string             `yaml:"nationality"`
	PlayedBy    string             `yaml:"played_by"`
	Appearances []AppearanceRecord `yaml:"appearances" validate:"dive"`
	Killed      []string           `yaml:"killed" validate:"dive,required"`
}

type AppearanceRecord struct {
	Season   string `yaml:"season" validate:"required"`
	Episodes int    `yaml:"episodes" validate:"gte=0"`
}

var validate = validator.New()

// node is a character with its edges resolved. The index in Store.nodes is
// the internal id.
type node struct {
	character wiki.Character
	actor     *wiki.Actor
	credits   []wiki.Credit
	victims   []*node
}

// Store holds the whole graph. It is immutable after construction.
type Store struct {
	nodes  []*node
	byName map[string]*node
	names  []string
	ranked []wiki.VictimNationality
}

var _ wiki.Store = (*Store)(nil)

// Load reads and parses a dataset file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset and builds a store from it.
func Parse(data []byte) (*Store, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return New(ds)
}

// New validates a dataset and resolves its edges. Character names need not
// be unique; references by name resolve to the first character listed.
func New(ds Dataset) (*Store, error) {
	if err := validate.Struct(ds); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	s := &Store{byName: make(map[string]*node, len(ds.Characters))}
	actors := make(map[string]*wiki.Actor)
	for i, rec := range ds.Characters {
		n := &node{character: wiki.Character{
			UID:         strconv.Itoa(i + 1),
			Name:        rec.Name,
			Nationality: rec.Nationality,
		}}
		if rec.PlayedBy != "" {
			a, ok := actors[rec.PlayedBy]
			if !ok {
				a = &wiki.Actor{UID: "actor-" + strconv.Itoa(len(actors)+1), Name: rec.PlayedBy}
				actors[rec.PlayedBy] = a
			}
			n.actor = a
		}
		for _, app := range rec.Appearances {
			n.credits = append(n.credits, wiki.Credit{Season: app.Season, Episodes: app.Episodes})
		}
		wiki.SortCredits(n.credits)

		s.nodes = append(s.nodes, n)
		s.names = append(s.names, rec.Name)
		if _, dup := s.byName[rec.Name]; !dup {
			s.byName[rec.Name] = n
		}
	}
	sort.Strings(s.names)

	counts := make(map[string]int)
	for i, rec := range ds.Characters {
		n := s.nodes[i]
		for _, name := range rec.Killed {
			victim, ok := s.byName[name]
			if !ok {
				return nil, fmt.Errorf("invalid dataset: %q killed unknown character %q", rec.Name, name)
			}
			n.victims = append(n.victims, victim)
			counts[victim.character.Nationality]++
		}
		sort.SliceStable(n.victims, func(a, b int) bool {
			return n.victims[a].character.Name < n.victims[b].character.Name
		})
	}
	s.ranked = wiki.RankNationalities(counts)

	return s, nil
}

// ListCharacters implements wiki.Store.
func (s *Store) ListCharacters(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.names...), nil
}

// VictimNationalities implements wiki.Store.
func (s *Store) VictimNationalities(ctx context.Context) ([]wiki.VictimNationality, error) {
	return append([]wiki.VictimNationality(nil), s.ranked...), nil
}

// FindCharacter implements wiki.Store.
func (s *Store) FindCharacter(ctx context.Context, name string) (*wiki.Character, error) {
	if err := wiki.CheckName(name); err != nil {
		return nil, err
	}
	n, ok := s.byName[name]
	if !ok {
		return nil, wiki.ErrNotFound
	}
	ch := n.character
	return &ch, nil
}

// Profile implements wiki.Store.
func (s *Store) Profile(ctx context.Context, c *wiki.Character) (*wiki.Profile, error) {
	id, err := strconv.Atoi(c.UID)
	if err != nil || id < 1 || id > len(s.nodes) {
		return nil, wiki.ErrNotFound
	}
	n := s.nodes[id-1]

	p := &wiki.Profile{
		Character:   n.character,
		Appearances: append([]wiki.Credit(nil), n.credits...),
	}
	if n.actor != nil {
		actor := *n.actor
		p.Actor = &actor
	}
	for _, v := range n.victims {
		p.Victims = append(p.Victims, v.character)
	}
	return p, nil
}
