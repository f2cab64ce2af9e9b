package service

import (
	"maps"
	"slices"
	"strings"

	"lawscape-backend/models"
)

type identityGroup struct {
	id       string
	name     string
	contents []models.ScoredDocument
}

// AnalyzeDependencies groups hits by identity and links identities whose law
// name appears in another identity's name or text.
//
// When the name of i is contained in j, i is a parent of j and j a child of i.
// Only identities carrying a non-empty law name can be parents. Parent and
// child lists follow the sorted identity order.
func AnalyzeDependencies(hits []models.ScoredDocument) map[string]models.DependencyRecord {
	byID := make(map[string][]models.ScoredDocument)
	for _, hit := range hits {
		id := hit.Document.ID()
		byID[id] = append(byID[id], hit)
	}

	ids := slices.Sorted(maps.Keys(byID))
	groups := make([]identityGroup, len(ids))
	for i, id := range ids {
		groups[i] = identityGroup{
			id:       id,
			name:     groupName(byID[id]),
			contents: byID[id],
		}
	}

	parents := make([][]string, len(groups))
	children := make([][]string, len(groups))
	for i := range groups {
		parents[i] = []string{}
		children[i] = []string{}
	}

	for i, src := range groups {
		if src.name == "" {
			continue
		}
		for j, dst := range groups {
			if i == j {
				continue
			}
			if references(src.name, dst) {
				parents[j] = append(parents[j], src.id)
				children[i] = append(children[i], dst.id)
			}
		}
	}

	records := make(map[string]models.DependencyRecord, len(groups))
	for i, g := range groups {
		records[g.id] = models.DependencyRecord{
			ID:       g.id,
			Contents: g.contents,
			Parents:  parents[i],
			Children: children[i],
		}
	}
	return records
}

// groupName returns the name of the first law in the group
func groupName(contents []models.ScoredDocument) string {
	for _, hit := range contents {
		if name, ok := hit.Document.Name(); ok {
			return name
		}
	}
	return ""
}

// references reports whether name occurs in the name of dst or in any of its texts
func references(name string, dst identityGroup) bool {
	if dst.name != "" && strings.Contains(dst.name, name) {
		return true
	}
	for _, hit := range dst.contents {
		if strings.Contains(hit.Document.Text(), name) {
			return true
		}
	}
	return false
}

// FlattenDependencies returns the records ordered by identity
func FlattenDependencies(records map[string]models.DependencyRecord) []models.DependencyRecord {
	out := make([]models.DependencyRecord, 0, len(records))
	for _, id := range slices.Sorted(maps.Keys(records)) {
		out = append(out, records[id])
	}
	return out
}

// countEdges returns the number of parent/child links in records
func countEdges(records map[string]models.DependencyRecord) int {
	n := 0
	for _, r := range records {
		n += len(r.Children)
	}
	return n
}
