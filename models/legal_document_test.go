package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLegalDocument_Accessors(t *testing.T) {
	law := NewLawDocument(Law{ID: "A", LawID: "A", Name: "道路交通法", Text: "本文"})
	prec := NewPrecedentDocument(Precedent{ID: "P1", Text: "判決"})

	if law.ID() != "A" || law.Text() != "本文" {
		t.Errorf("unexpected law accessors: %q %q", law.ID(), law.Text())
	}
	if name, ok := law.Name(); !ok || name != "道路交通法" {
		t.Errorf("expected law name, got %q %v", name, ok)
	}
	if prec.ID() != "P1" || prec.Text() != "判決" {
		t.Errorf("unexpected precedent accessors: %q %q", prec.ID(), prec.Text())
	}
	if _, ok := prec.Name(); ok {
		t.Error("precedent must not have a name")
	}
}

func TestLegalDocument_JSONCarriesTypeTag(t *testing.T) {
	doc := NewLawDocument(Law{
		ID:    "335AC0000000105",
		LawID: "335AC0000000105",
		Name:  "道路交通法",
		Index: ArticleIndex{Article: "1", Title: "第一条"},
		Text:  "この法律は、道路における危険を防止し",
	})

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"type":"Law"`) {
		t.Errorf("expected type tag in %s", data)
	}
	if !strings.Contains(string(data), `"name":"道路交通法"`) {
		t.Errorf("expected flattened law fields in %s", data)
	}

	var decoded LegalDocument
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Kind != KindLaw || decoded.Law.Index.Title != "第一条" {
		t.Errorf("unexpected decoded document: %+v", decoded.Law)
	}
}

func TestLegalDocument_UnmarshalRejectsUnknownType(t *testing.T) {
	var doc LegalDocument
	if err := json.Unmarshal([]byte(`{"type":"Treaty","id":"x"}`), &doc); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestLegalDocument_Scan(t *testing.T) {
	var doc LegalDocument
	if err := doc.Scan(`{"type":"Precedent","id":"P1","info":{"lawsuit_id":"P1"},"text":"判決"}`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if doc.Kind != KindPrecedent || doc.Precedent.Info.LawsuitID != "P1" {
		t.Errorf("unexpected scanned document: %+v", doc)
	}
	if err := doc.Scan(nil); err == nil {
		t.Error("expected error scanning NULL")
	}
}

func TestLegalDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     LegalDocument
		wantErr bool
	}{
		{"law", NewLawDocument(Law{ID: "A"}), false},
		{"precedent", NewPrecedentDocument(Precedent{ID: "P"}), false},
		{"missing id", NewLawDocument(Law{Name: "x"}), true},
		{"missing payload", LegalDocument{Kind: KindLaw}, true},
		{"zero value", LegalDocument{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrimaryKey(t *testing.T) {
	first := NewLawDocument(Law{ID: "A", Index: ArticleIndex{Article: "1"}})
	suppl := NewLawDocument(Law{ID: "A", Index: ArticleIndex{Article: "1", Supplementary: true, AmendLawNum: "令和元年法律第一号"}})

	if PrimaryKeyID.KeyOf(first) != PrimaryKeyID.KeyOf(suppl) {
		t.Error("id mode must key fragments of one law identically")
	}
	if PrimaryKeyFragment.KeyOf(first) == PrimaryKeyFragment.KeyOf(suppl) {
		t.Error("fragment mode must distinguish main and supplementary articles")
	}

	if k, err := ParsePrimaryKey(""); err != nil || k != PrimaryKeyFragment {
		t.Errorf("empty primary key = %q, %v", k, err)
	}
	if _, err := ParsePrimaryKey("law_id"); !errors.Is(err, ErrInvalidPrimaryKey) {
		t.Errorf("expected ErrInvalidPrimaryKey, got %v", err)
	}
}
