package service

import (
	"slices"
	"testing"

	"lawscape-backend/models"
)

func score(v float64) *float64 {
	return &v
}

func lawHit(id, name, article, text string) models.ScoredDocument {
	return models.ScoredDocument{
		Document: models.NewLawDocument(models.Law{
			ID:    id,
			LawID: id,
			Name:  name,
			Index: models.ArticleIndex{Article: article},
			Text:  text,
		}),
		Score: score(0.9),
	}
}

func precedentHit(id, text string) models.ScoredDocument {
	return models.ScoredDocument{
		Document: models.NewPrecedentDocument(models.Precedent{
			ID:   id,
			Info: models.PrecedentInfo{LawsuitID: id},
			Text: text,
		}),
		Score: score(0.7),
	}
}

func TestAnalyzeDependencies_NameContainedInNameAndText(t *testing.T) {
	hits := []models.ScoredDocument{
		lawHit("A", "道路交通法", "1", "この法律は、道路における危険を防止し"),
		lawHit("B", "道路交通法施行令", "1", "道路交通法第1条による"),
	}

	records := AnalyzeDependencies(hits)

	if got := records["A"].Children; !slices.Equal(got, []string{"B"}) {
		t.Errorf("expected children(A) = [B], got %v", got)
	}
	if got := records["B"].Parents; !slices.Equal(got, []string{"A"}) {
		t.Errorf("expected parents(B) = [A], got %v", got)
	}
	if len(records["A"].Parents) != 0 || len(records["B"].Children) != 0 {
		t.Errorf("unexpected reverse edges: A.parents=%v B.children=%v", records["A"].Parents, records["B"].Children)
	}
}

func TestAnalyzeDependencies_SinglePrecedent(t *testing.T) {
	records := AnalyzeDependencies([]models.ScoredDocument{precedentHit("P1", "判決文")})

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records["P1"]
	if r.Parents == nil || r.Children == nil {
		t.Fatal("parents and children must be empty slices, not nil")
	}
	if len(r.Parents) != 0 || len(r.Children) != 0 {
		t.Errorf("expected no edges, got parents=%v children=%v", r.Parents, r.Children)
	}
}

func TestAnalyzeDependencies_FragmentsShareOneRecord(t *testing.T) {
	hits := []models.ScoredDocument{
		lawHit("A", "民法", "1", "私権は、公共の福祉に適合しなければならない。"),
		lawHit("A", "民法", "2", "この法律は、個人の尊厳と両性の本質的平等を旨として"),
	}

	records := AnalyzeDependencies(hits)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	contents := records["A"].Contents
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Document.Law.Index.Article != "1" || contents[1].Document.Law.Index.Article != "2" {
		t.Error("contents must keep input order")
	}
}

func TestAnalyzeDependencies_DisjointLaws(t *testing.T) {
	hits := []models.ScoredDocument{
		lawHit("A", "X", "1", "aaa"),
		lawHit("B", "Y", "1", "bbb"),
	}

	records := AnalyzeDependencies(hits)

	for _, id := range []string{"A", "B"} {
		if len(records[id].Parents) != 0 || len(records[id].Children) != 0 {
			t.Errorf("expected no edges for %s, got %+v", id, records[id])
		}
	}
}

func TestAnalyzeDependencies_EmptyNameNeverReferences(t *testing.T) {
	hits := []models.ScoredDocument{
		lawHit("A", "", "1", "名前のない法令"),
		lawHit("B", "刑法", "1", "何でも含む本文"),
		precedentHit("P1", "判決"),
	}

	records := AnalyzeDependencies(hits)

	if len(records["A"].Children) != 0 {
		t.Errorf("empty name must not produce edges, got children=%v", records["A"].Children)
	}
	for id, r := range records {
		if slices.Contains(r.Parents, "A") {
			t.Errorf("%s lists A as parent", id)
		}
	}
}

func TestAnalyzeDependencies_PrecedentIsChildNeverParent(t *testing.T) {
	hits := []models.ScoredDocument{
		precedentHit("P1", "本件は刑法第百九十九条に該当する"),
		lawHit("L", "刑法", "199", "人を殺した者は、死刑又は無期若しくは五年以上の懲役に処する。"),
	}

	records := AnalyzeDependencies(hits)

	if !slices.Equal(records["L"].Children, []string{"P1"}) {
		t.Errorf("expected children(L) = [P1], got %v", records["L"].Children)
	}
	if !slices.Equal(records["P1"].Parents, []string{"L"}) {
		t.Errorf("expected parents(P1) = [L], got %v", records["P1"].Parents)
	}
	if len(records["P1"].Children) != 0 {
		t.Errorf("precedent must not have children, got %v", records["P1"].Children)
	}
}

func TestAnalyzeDependencies_EdgeListsFollowSortedIdentities(t *testing.T) {
	hits := []models.ScoredDocument{
		lawHit("C", "会社法施行規則", "1", ""),
		lawHit("A", "会社法", "1", ""),
		lawHit("B", "会社法施行令", "1", ""),
	}

	records := AnalyzeDependencies(hits)

	if got := records["A"].Children; !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("expected children(A) = [B C], got %v", got)
	}
	if got := records["C"].Parents; !slices.Equal(got, []string{"A"}) {
		t.Errorf("expected parents(C) = [A], got %v", got)
	}
}

func TestAnalyzeDependencies_Properties(t *testing.T) {
	hits := []models.ScoredDocument{
		lawHit("A", "道路交通法", "1", "道路交通法施行令の定めるところにより"),
		lawHit("B", "道路交通法施行令", "1", "道路交通法第1条"),
		lawHit("B", "道路交通法施行令", "2", "自動車"),
		lawHit("C", "刑法", "1", "道路交通法違反"),
		precedentHit("P1", "被告人は刑法及び道路交通法に違反した"),
		precedentHit("P2", "無関係"),
		lawHit("D", "", "1", ""),
	}

	records := AnalyzeDependencies(hits)

	distinct := map[string]bool{}
	for _, h := range hits {
		distinct[h.Document.ID()] = true
	}
	if len(records) != len(distinct) {
		t.Fatalf("expected %d records, got %d", len(distinct), len(records))
	}

	for id, r := range records {
		if r.ID != id {
			t.Errorf("record keyed %s has ID %s", id, r.ID)
		}
		if slices.Contains(r.Parents, id) || slices.Contains(r.Children, id) {
			t.Errorf("%s references itself", id)
		}
		for _, p := range r.Parents {
			if !slices.Contains(records[p].Children, id) {
				t.Errorf("%s in parents(%s) but %s not in children(%s)", p, id, id, p)
			}
			if name, ok := records[p].Contents[0].Document.Name(); !ok || name == "" {
				t.Errorf("unnamed identity %s appears as parent", p)
			}
		}
		for _, c := range r.Children {
			if !slices.Contains(records[c].Parents, id) {
				t.Errorf("%s in children(%s) but %s not in parents(%s)", c, id, id, c)
			}
		}
	}

	// A -> B (name), A -> C (text), A -> P1, C -> P1, B -> A (text)
	if !slices.Equal(records["A"].Children, []string{"B", "C", "P1"}) {
		t.Errorf("unexpected children(A): %v", records["A"].Children)
	}
	if !slices.Equal(records["P1"].Parents, []string{"A", "C"}) {
		t.Errorf("unexpected parents(P1): %v", records["P1"].Parents)
	}
	if !slices.Equal(records["A"].Parents, []string{"B"}) {
		t.Errorf("unexpected parents(A): %v", records["A"].Parents)
	}
}

func TestAnalyzeDependencies_PermutationWithinGroup(t *testing.T) {
	first := []models.ScoredDocument{
		lawHit("A", "道路交通法", "1", "x"),
		lawHit("B", "道路運送法", "1", "道路交通法"),
		lawHit("B", "道路運送法", "2", "y"),
	}
	second := []models.ScoredDocument{first[2], first[0], first[1]}

	a := AnalyzeDependencies(first)
	b := AnalyzeDependencies(second)

	for id := range a {
		if !slices.Equal(a[id].Parents, b[id].Parents) || !slices.Equal(a[id].Children, b[id].Children) {
			t.Errorf("edges of %s differ under permutation: %+v vs %+v", id, a[id], b[id])
		}
		if len(a[id].Contents) != len(b[id].Contents) {
			t.Errorf("contents of %s differ in size", id)
		}
	}
}

func TestAnalyzeDependencies_EmptyInput(t *testing.T) {
	records := AnalyzeDependencies(nil)
	if len(records) != 0 {
		t.Errorf("expected empty map, got %v", records)
	}
}

func TestFlattenDependencies_SortedByID(t *testing.T) {
	records := AnalyzeDependencies([]models.ScoredDocument{
		precedentHit("P2", ""),
		lawHit("A", "民法", "1", ""),
		precedentHit("P1", ""),
	})

	flat := FlattenDependencies(records)

	var ids []string
	for _, r := range flat {
		ids = append(ids, r.ID)
	}
	if !slices.Equal(ids, []string{"A", "P1", "P2"}) {
		t.Errorf("unexpected order: %v", ids)
	}
}
