package models

// DependencyRecord groups the hits of one identity with its reference edges
type DependencyRecord struct {
	ID       string           `json:"id"`
	Contents []ScoredDocument `json:"contents"`
	// Parents are identities whose name appears in this identity's name or text
	Parents []string `json:"parents"`
	// Children are identities whose name or text contains this identity's name
	Children []string `json:"children"`
}
