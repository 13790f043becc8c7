package wiki

type Actor struct {
	UID       string      `json:"uid,omitempty"`
	DType     []string    `json:"dgraph.type,omitempty"`
	Name      string      `json:"name,omitempty" dgraph:"index=hash,term,trigram,fulltext"`
	StarredAs []Character `json:"starredAs,omitempty" dgraph:"predicate=starred_as reverse count"`
}
