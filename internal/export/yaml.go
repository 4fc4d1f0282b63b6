package export

import "gopkg.in/yaml.v3"

type yamlNote struct {
	Title      string   `yaml:"title"`
	ID         string   `yaml:"id"`
	Content    string   `yaml:"content"`
	Categories []string `yaml:"categories"`
	Metadata   yamlMeta `yaml:"metadata"`
}

type yamlMeta struct {
	CreatedAt      string `yaml:"created_at"`
	UpdatedAt      string `yaml:"updated_at"`
	ExportedAt     string `yaml:"exported_at"`
	WordCount      int    `yaml:"word_count"`
	CharacterCount int    `yaml:"character_count"`
}

func renderYAML(req Request) ([]byte, error) {
	categories := req.Categories
	if categories == nil {
		categories = []string{}
	}
	data, err := yaml.Marshal(yamlNote{
		Title:      req.Title,
		ID:         req.ID,
		Content:    req.Doc.PlainText(),
		Categories: categories,
		Metadata: yamlMeta{
			CreatedAt:      iso(req.CreatedAt),
			UpdatedAt:      iso(req.UpdatedAt),
			ExportedAt:     iso(req.ExportedAt),
			WordCount:      req.Doc.WordCount(),
			CharacterCount: req.Doc.CharCount(),
		},
	})
	if err != nil {
		return nil, err
	}
	return append([]byte("---\n"), data...), nil
}
