package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DocumentKind is the discriminator of a LegalDocument
type DocumentKind string

const (
	KindLaw       DocumentKind = "Law"
	KindPrecedent DocumentKind = "Precedent"
)

// ArticleIndex locates a fragment inside a law
type ArticleIndex struct {
	Article       string `json:"article"`                 // Article Num attribute, e.g. "1", "2_3"
	Title         string `json:"title,omitempty"`         // e.g. "第一条"
	Caption       string `json:"caption,omitempty"`       // e.g. "（目的）"
	Supplementary bool   `json:"supplementary,omitempty"` // true inside SupplProvision
	AmendLawNum   string `json:"amend_law_num,omitempty"` // SupplProvision AmendLawNum attribute
}

// Key returns a string unique to the fragment within its law
func (a ArticleIndex) Key() string {
	if a.Supplementary {
		return "suppl:" + a.AmendLawNum + ":" + a.Article
	}
	return "main:" + a.Article
}

// Law is one indexed fragment (article) of a statute
type Law struct {
	ID    string       `json:"id"`
	LawID string       `json:"law_id"`
	Name  string       `json:"name"`
	Index ArticleIndex `json:"index"`
	Text  string       `json:"text"`
}

// PrecedentInfo identifies a court decision
type PrecedentInfo struct {
	LawsuitID      string `json:"lawsuit_id"`
	CaseNumber     string `json:"case_number"`
	CaseName       string `json:"case_name"`
	CourtName      string `json:"court_name"`
	Date           string `json:"date"`
	TrialType      string `json:"trial_type"`
	DetailPageLink string `json:"detail_page_link,omitempty"`
	FullPdfLink    string `json:"full_pdf_link,omitempty"`
}

// FileName returns the name of the file holding the precedent body
func (p PrecedentInfo) FileName() string {
	return p.LawsuitID + ".json"
}

// Precedent is a court decision
type Precedent struct {
	ID   string        `json:"id"`
	Info PrecedentInfo `json:"info"`
	Text string        `json:"text"`
}

// LegalDocument is either a Law fragment or a Precedent.
// Exactly one of Law and Precedent is set, matching Kind.
type LegalDocument struct {
	Kind      DocumentKind
	Law       *Law
	Precedent *Precedent
}

// NewLawDocument wraps a law fragment
func NewLawDocument(l Law) LegalDocument {
	return LegalDocument{Kind: KindLaw, Law: &l}
}

// NewPrecedentDocument wraps a precedent
func NewPrecedentDocument(p Precedent) LegalDocument {
	return LegalDocument{Kind: KindPrecedent, Precedent: &p}
}

// ID returns the identity shared by all fragments of the same document
func (d LegalDocument) ID() string {
	switch d.Kind {
	case KindLaw:
		return d.Law.ID
	case KindPrecedent:
		return d.Precedent.ID
	}
	return ""
}

// Text returns the full text of the document
func (d LegalDocument) Text() string {
	switch d.Kind {
	case KindLaw:
		return d.Law.Text
	case KindPrecedent:
		return d.Precedent.Text
	}
	return ""
}

// Name returns the display name. Only laws have one.
func (d LegalDocument) Name() (string, bool) {
	if d.Kind == KindLaw {
		return d.Law.Name, true
	}
	return "", false
}

// FragmentKey returns the identity plus the position of the fragment
func (d LegalDocument) FragmentKey() string {
	if d.Kind == KindLaw {
		return d.Law.ID + "#" + d.Law.Index.Key()
	}
	return d.ID()
}

// Validate checks the variant payload and the identity
func (d LegalDocument) Validate() error {
	switch d.Kind {
	case KindLaw:
		if d.Law == nil {
			return fmt.Errorf("%w: law document without payload", ErrInvalidDocument)
		}
	case KindPrecedent:
		if d.Precedent == nil {
			return fmt.Errorf("%w: precedent document without payload", ErrInvalidDocument)
		}
	default:
		return fmt.Errorf("%w: unknown document type %q", ErrInvalidDocument, d.Kind)
	}
	if d.ID() == "" {
		return fmt.Errorf("%w: %s document without id", ErrInvalidDocument, d.Kind)
	}
	return nil
}

// MarshalJSON writes the document with a "type" discriminator next to the variant fields
func (d LegalDocument) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindLaw:
		return json.Marshal(struct {
			Type DocumentKind `json:"type"`
			*Law
		}{KindLaw, d.Law})
	case KindPrecedent:
		return json.Marshal(struct {
			Type DocumentKind `json:"type"`
			*Precedent
		}{KindPrecedent, d.Precedent})
	}
	return nil, fmt.Errorf("unknown document type %q", d.Kind)
}

// UnmarshalJSON reads the "type" discriminator and decodes the matching variant
func (d *LegalDocument) UnmarshalJSON(data []byte) error {
	var head struct {
		Type DocumentKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case KindLaw:
		var l Law
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		*d = NewLawDocument(l)
	case KindPrecedent:
		var p Precedent
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*d = NewPrecedentDocument(p)
	default:
		return fmt.Errorf("unknown document type %q", head.Type)
	}
	return nil
}

// Value implements driver.Valuer for JSONB
func (d LegalDocument) Value() (driver.Value, error) {
	return d.MarshalJSON()
}

// Scan implements sql.Scanner for JSONB
func (d *LegalDocument) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		return fmt.Errorf("document column is NULL")
	default:
		return fmt.Errorf("cannot scan %T into LegalDocument", value)
	}
	return d.UnmarshalJSON(bytes)
}

// ScoredDocument is a search hit
type ScoredDocument struct {
	Document LegalDocument `json:"document"`
	Score    *float64      `json:"score"`
}

// SearchQuery is what the search backend receives
type SearchQuery struct {
	Text     string
	Limit    int
	MinScore float64
	Locale   string
}
