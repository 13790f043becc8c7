package wiki

// Appearance carries the APPEARED_IN edge attributes. Dgraph stores it as an
// intermediate node between the character and the season.
type Appearance struct {
	UID      string   `json:"uid,omitempty"`
	DType    []string `json:"dgraph.type,omitempty"`
	Episodes int      `json:"episodes,omitempty" dgraph:"predicate=appearance.episodes"`
	Season   []Season `json:"season,omitempty" dgraph:"predicate=appearance.season reverse"`
}
