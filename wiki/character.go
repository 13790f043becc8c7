package wiki

type Character struct {
	UID         string       `json:"uid,omitempty"`
	DType       []string     `json:"dgraph.type,omitempty"`
	Name        string       `json:"name,omitempty" dgraph:"index=hash,term,trigram,fulltext"`
	Nationality string       `json:"nationality,omitempty" dgraph:"index=hash"`
	Appearances []Appearance `json:"appearances,omitempty" dgraph:"predicate=appeared_in count"`
	Killed      []Character  `json:"killed,omitempty" dgraph:"predicate=killed reverse count"`
	PlayedBy    []Actor      `json:"playedBy,omitempty" dgraph:"predicate=~starred_as reverse"`
}
