package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"lawscape-backend/models"
)

// PrecedentData is the body file of one precedent
type PrecedentData struct {
	Contents *string `json:"contents"`
}

// ParsePrecedent decodes a precedent body file
func ParsePrecedent(r io.Reader) (*PrecedentData, error) {
	var data PrecedentData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode precedent: %w", err)
	}
	return &data, nil
}

// PrecedentDocument builds the indexed document of a precedent
func PrecedentDocument(info models.PrecedentInfo, text string) models.LegalDocument {
	return models.NewPrecedentDocument(models.Precedent{
		ID:   info.LawsuitID,
		Info: info,
		Text: text,
	})
}

// LawDocuments builds one indexed document per parsed article
func LawDocuments(info LawInfo, patch LawPatchInfo, law *ParsedLaw) []models.LegalDocument {
	lawID := patch.LawID
	if lawID == "" {
		lawID = info.ID
	}

	docs := make([]models.LegalDocument, 0, len(law.Articles))
	for _, a := range law.Articles {
		docs = append(docs, models.NewLawDocument(models.Law{
			ID:    info.ID,
			LawID: lawID,
			Name:  info.Name,
			Index: a.Index,
			Text:  a.Text(),
		}))
	}
	return docs
}
