package export

import "encoding/json"

type jsonNote struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	PlainTextContent string   `json:"plainTextContent"`
	Categories       []string `json:"categories"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
	ExportedAt       string   `json:"exportedAt"`
	Metadata         jsonMeta `json:"metadata"`
}

type jsonMeta struct {
	WordCount      int    `json:"wordCount"`
	CharacterCount int    `json:"characterCount"`
	Version        string `json:"version"`
}

func renderJSON(req Request) ([]byte, error) {
	categories := req.Categories
	if categories == nil {
		categories = []string{}
	}
	return json.MarshalIndent(jsonNote{
		ID:               req.ID,
		Title:            req.Title,
		Content:          req.Doc.Serialize(),
		PlainTextContent: req.Doc.PlainText(),
		Categories:       categories,
		CreatedAt:        iso(req.CreatedAt),
		UpdatedAt:        iso(req.UpdatedAt),
		ExportedAt:       iso(req.ExportedAt),
		Metadata: jsonMeta{
			WordCount:      req.Doc.WordCount(),
			CharacterCount: req.Doc.CharCount(),
			Version:        "1.0",
		},
	}, "", "  ")
}
