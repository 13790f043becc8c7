package wiki

type Season struct {
	UID         string       `json:"uid,omitempty"`
	DType       []string     `json:"dgraph.type,omitempty"`
	Name        string       `json:"name,omitempty" dgraph:"index=hash,term,trigram,fulltext"`
	Appearances []Appearance `json:"appearances,omitempty" dgraph:"predicate=~appearance.season reverse"`
}
