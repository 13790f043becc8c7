package wiki

import (
	"context"
	"errors"
	"sort"
)

var (
	// ErrNotFound is returned by FindCharacter when no character has the
	// requested name.
	ErrNotFound = errors.New("character not found")

	// ErrEmptyName is returned by FindCharacter for an empty name, which can
	// never identify a character.
	ErrEmptyName = errors.New("character name is empty")
)

// Store is the read-only query surface the wiki pages are rendered from.
// Implementations must be safe for concurrent use.
type Store interface {
	// ListCharacters returns every character name in ascending order.
	ListCharacters(ctx context.Context) ([]string, error)

	// VictimNationalities counts KILLED relationships per victim
	// nationality, highest count first.
	VictimNationalities(ctx context.Context) ([]VictimNationality, error)

	// FindCharacter looks a character up by exact name. When several
	// characters share the name, the one with the lowest internal id wins.
	FindCharacter(ctx context.Context, name string) (*Character, error)

	// Profile fetches the actor, appearances and victims of a character
	// previously returned by FindCharacter.
	Profile(ctx context.Context, c *Character) (*Profile, error)
}

// VictimNationality is one row of the victim nationality ranking.
type VictimNationality struct {
	Nationality string
	Victims     int
}

// Credit is a single APPEARED_IN edge flattened to its season name.
type Credit struct {
	Season   string
	Episodes int
}

// Profile is everything the character page shows.
type Profile struct {
	Character   Character
	Actor       *Actor // nil when no one STARRED_AS the character
	Appearances []Credit
	Victims     []Character
}

// CheckName rejects names that can never match a character.
func CheckName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return nil
}

// RankNationalities turns per-nationality victim counts into the ranking
// order used by every store: count descending, then nationality ascending.
// Empty nationalities are dropped.
func RankNationalities(counts map[string]int) []VictimNationality {
	ranked := make([]VictimNationality, 0, len(counts))
	for nationality, n := range counts {
		if nationality == "" {
			continue
		}
		ranked = append(ranked, VictimNationality{Nationality: nationality, Victims: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Victims != ranked[j].Victims {
			return ranked[i].Victims > ranked[j].Victims
		}
		return ranked[i].Nationality < ranked[j].Nationality
	})
	return ranked
}

// SortCredits orders appearances by season name, then episode count.
func SortCredits(credits []Credit) {
	sort.SliceStable(credits, func(i, j int) bool {
		if credits[i].Season != credits[j].Season {
			return credits[i].Season < credits[j].Season
		}
		return credits[i].Episodes < credits[j].Episodes
	})
}
