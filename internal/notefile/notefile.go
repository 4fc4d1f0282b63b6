// Package notefile encodes and decodes persisted note files: a YAML
// metadata header inside a leading HTML comment, followed by the markup
// body. The header keeps the file self-describing while the file as a
// whole stays renderable HTML.
package notefile

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/D3nams/Notepad/internal/document"
)

const (
	headerOpen  = "<!--notepad\n"
	headerClose = "\n-->\n"
)

// Meta is the note metadata carried in the file header.
type Meta struct {
	ID         string    `yaml:"id"`
	Title      string    `yaml:"title"`
	Categories []string  `yaml:"categories,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// Encode renders a note file: header comment plus markup body.
func Encode(meta Meta, body string) ([]byte, error) {
	head, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("notefile: marshal header: %w", err)
	}
	var b bytes.Buffer
	b.WriteString(headerOpen)
	b.Write(bytes.TrimRight(head, "\n"))
	b.WriteString(headerClose)
	b.WriteString(body)
	return b.Bytes(), nil
}

// Parse splits a note file into its metadata and markup body. A file
// without a header is treated as bare body with the title derived from
// its first heading.
func Parse(data []byte) (Meta, string, error) {
	s := string(data)
	if !strings.HasPrefix(s, headerOpen) {
		body := s
		return Meta{Title: deriveTitle(body)}, body, nil
	}
	rest := s[len(headerOpen):]
	end := strings.Index(rest, headerClose)
	if end < 0 {
		// Unterminated header: treat the whole file as body.
		return Meta{Title: deriveTitle(s)}, s, nil
	}
	var meta Meta
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return Meta{}, "", fmt.Errorf("notefile: parse header: %w", err)
	}
	body := rest[end+len(headerClose):]
	if meta.Title == "" {
		meta.Title = deriveTitle(body)
	}
	return meta, body, nil
}

// deriveTitle returns the text of the first heading block, or the first
// non-empty plain-text line.
func deriveTitle(body string) string {
	blocks := document.Parse(body)
	for _, blk := range blocks {
		if blk.Kind == document.Heading1 || blk.Kind == document.Heading2 {
			if t := strings.TrimSpace(blk.Text()); t != "" {
				return t
			}
		}
	}
	for _, blk := range blocks {
		for _, line := range strings.Split(blk.Text(), "\n") {
			if t := strings.TrimSpace(line); t != "" {
				return t
			}
		}
	}
	return ""
}
