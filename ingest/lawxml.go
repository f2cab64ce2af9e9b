package ingest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"lawscape-backend/models"
)

// ParsedArticle is the text of one article, one line per paragraph or item
type ParsedArticle struct {
	Index models.ArticleIndex
	Lines []string
}

// Text joins the lines of the article
func (a ParsedArticle) Text() string {
	return strings.Join(a.Lines, "\n")
}

// ParsedLaw is the content of an e-Gov law XML file
type ParsedLaw struct {
	Title    string
	LawNum   string
	Articles []ParsedArticle
}

// lawParser walks the XML token stream and collects article text
type lawParser struct {
	law ParsedLaw

	inMain      bool
	inSuppl     bool
	amendLawNum string
	article     *ParsedArticle
	loose       *ParsedArticle // paragraphs placed directly in a provision

	capture *strings.Builder // receives character data, nil when ignored
	line    *strings.Builder // current sentence line
	lineEl  string           // element that opened the current line
	skip    int              // depth inside ignored elements such as Rt
}

// ParseLawXML extracts the articles of the main and supplementary provisions
func ParseLawXML(r io.Reader) (*ParsedLaw, error) {
	p := &lawParser{}
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse law xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.start(t)
		case xml.EndElement:
			p.end(t)
		case xml.CharData:
			if p.skip == 0 && p.capture != nil {
				p.capture.Write(t)
			}
		}
	}

	if p.law.Title == "" && len(p.law.Articles) == 0 {
		return nil, errors.New("law xml contains no LawTitle or Article")
	}
	return &p.law, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// isLineElement reports elements whose sentences form one line of text,
// e.g. ParagraphSentence, ItemSentence, Subitem1Sentence
func isLineElement(name string) bool {
	return name != "Sentence" && strings.HasSuffix(name, "Sentence")
}

func (p *lawParser) target() *ParsedArticle {
	if p.article != nil {
		return p.article
	}
	if p.inMain || p.inSuppl {
		if p.loose == nil {
			p.loose = &ParsedArticle{Index: models.ArticleIndex{
				Supplementary: p.inSuppl,
				AmendLawNum:   p.amendLawNum,
			}}
		}
		return p.loose
	}
	return nil
}

// flushLoose emits the provision-level paragraphs collected so far
func (p *lawParser) flushLoose() {
	if p.loose != nil && len(p.loose.Lines) > 0 {
		p.law.Articles = append(p.law.Articles, *p.loose)
	}
	p.loose = nil
}

func (p *lawParser) start(el xml.StartElement) {
	if p.skip > 0 || el.Name.Local == "Rt" {
		p.skip++
		return
	}

	switch name := el.Name.Local; {
	case name == "LawTitle", name == "LawNum":
		p.capture = &strings.Builder{}
	case name == "MainProvision":
		p.inMain = true
	case name == "SupplProvision":
		p.inSuppl = true
		p.amendLawNum = attr(el, "AmendLawNum")
	case name == "Article":
		p.article = &ParsedArticle{Index: models.ArticleIndex{
			Article:       attr(el, "Num"),
			Supplementary: p.inSuppl,
			AmendLawNum:   p.amendLawNum,
		}}
	case name == "ArticleTitle", name == "ArticleCaption":
		if p.article != nil {
			p.capture = &strings.Builder{}
		}
	case isLineElement(name):
		if p.line == nil {
			p.line = &strings.Builder{}
			p.lineEl = name
		}
	case name == "Column":
		if p.line != nil && p.line.Len() > 0 {
			p.line.WriteString("　")
		}
	case name == "Sentence":
		if p.line == nil {
			// sentence outside a line element, e.g. inside a table column
			p.line = &strings.Builder{}
			p.lineEl = name
		}
		p.capture = p.line
	}
}

func (p *lawParser) end(el xml.EndElement) {
	if p.skip > 0 {
		p.skip--
		return
	}

	name := el.Name.Local
	switch {
	case name == "LawTitle":
		p.law.Title = strings.TrimSpace(p.capture.String())
		p.capture = nil
	case name == "LawNum":
		p.law.LawNum = strings.TrimSpace(p.capture.String())
		p.capture = nil
	case name == "ArticleTitle" && p.article != nil:
		p.article.Index.Title = strings.TrimSpace(p.capture.String())
		p.capture = nil
	case name == "ArticleCaption" && p.article != nil:
		p.article.Index.Caption = strings.TrimSpace(p.capture.String())
		p.capture = nil
	case name == p.lineEl && p.line != nil:
		text := strings.TrimSpace(p.line.String())
		if t := p.target(); t != nil && text != "" {
			t.Lines = append(t.Lines, text)
		}
		p.line = nil
		p.lineEl = ""
		p.capture = nil
	case name == "Sentence":
		p.capture = nil
	case name == "Article" && p.article != nil:
		p.law.Articles = append(p.law.Articles, *p.article)
		p.article = nil
	case name == "MainProvision":
		p.flushLoose()
		p.inMain = false
	case name == "SupplProvision":
		p.flushLoose()
		p.inSuppl = false
		p.amendLawNum = ""
	}
}
