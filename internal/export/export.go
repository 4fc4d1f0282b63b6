// Package export renders frozen document snapshots into download artifacts.
// Every exporter is a structural visitor over the document tree: one case
// per block kind and per inline attribute, no string-substitution chains.
// Renderers are pure; handing the bytes to a client is the API layer's job.
package export

import (
	"fmt"
	"slices"
	"time"

	"github.com/D3nams/Notepad/internal/apperr"
	"github.com/D3nams/Notepad/internal/document"
)

// Format identifies a target export syntax.
type Format string

const (
	Text       Format = "txt"
	Markdown   Format = "md"
	HTML       Format = "html"
	JSON       Format = "json"
	XML        Format = "xml"
	RTF        Format = "rtf"
	CSV        Format = "csv"
	LaTeX      Format = "tex"
	YAML       Format = "yaml"
	SQL        Format = "sql"
	C          Format = "c"
	Python     Format = "py"
	JavaScript Format = "js"
	Assembly   Format = "asm"
	NASM       Format = "nasm"
)

// Request is one export job. Doc must be a frozen clone; renderers never
// mutate it. ExportedAt is supplied by the caller so the same request
// always produces byte-identical output.
type Request struct {
	ID         string
	Title      string
	Doc        document.Document
	Categories []string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExportedAt time.Time
}

// Result is the rendered artifact with its suggested download name.
type Result struct {
	Data        []byte
	Filename    string
	ContentType string
}

type renderer struct {
	ext         string
	contentType string
	render      func(Request) ([]byte, error)
}

var formats = map[Format]renderer{
	Text:       {"txt", "text/plain", renderText},
	Markdown:   {"md", "text/markdown", renderMarkdown},
	HTML:       {"html", "text/html", renderHTML},
	JSON:       {"json", "application/json", renderJSON},
	XML:        {"xml", "application/xml", renderXML},
	RTF:        {"rtf", "application/rtf", renderRTF},
	CSV:        {"csv", "text/csv", renderCSV},
	LaTeX:      {"tex", "application/x-latex", renderLaTeX},
	YAML:       {"yaml", "application/x-yaml", renderYAML},
	SQL:        {"sql", "application/sql", renderSQL},
	C:          {"c", "text/plain", renderC},
	Python:     {"py", "text/plain", renderPython},
	JavaScript: {"js", "application/javascript", renderJavaScript},
	Assembly:   {"asm", "text/plain", renderAssembly},
	NASM:       {"nasm", "text/plain", renderNASM},
}

// Formats lists every supported format identifier in lexical order.
func Formats() []Format {
	out := make([]Format, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Supported reports whether f names a registered format.
func Supported(f Format) bool {
	_, ok := formats[f]
	return ok
}

// Export renders req into the named format.
func Export(format Format, req Request) (Result, error) {
	r, ok := formats[format]
	if !ok {
		return Result{}, fmt.Errorf("export: format %q: %w", format, apperr.ErrNotFound)
	}
	data, err := r.render(req)
	if err != nil {
		return Result{}, fmt.Errorf("export: render %s: %w: %v", format, apperr.ErrExportEncoding, err)
	}
	return Result{
		Data:        data,
		Filename:    Sanitize(req.Title) + "." + r.ext,
		ContentType: r.contentType,
	}, nil
}

const stampLayout = "Jan 2, 2006 3:04 PM"

// stamp formats a timestamp for human-readable metadata lines.
func stamp(t time.Time) string { return t.Format(stampLayout) }

// iso formats a timestamp for machine-readable metadata fields.
func iso(t time.Time) string { return t.UTC().Format(time.RFC3339) }
