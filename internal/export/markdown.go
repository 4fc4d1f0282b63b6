package export

import (
	"fmt"
	"strings"

	"github.com/D3nams/Notepad/internal/document"
)

// renderMarkdown maps each block kind onto its Markdown construct and each
// format attribute onto its delimiter pair.
func renderMarkdown(req Request) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# " + req.Title + "\n\n")

	blocks := make([]string, 0, len(req.Doc.Blocks))
	for _, blk := range req.Doc.Blocks {
		blocks = append(blocks, markdownBlock(blk))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))

	b.WriteString("\n\n---\n")
	b.WriteString("*Created: " + stamp(req.CreatedAt) + "*  \n")
	b.WriteString("*Last Updated: " + stamp(req.UpdatedAt) + "*")
	return []byte(b.String()), nil
}

func markdownBlock(blk document.Block) string {
	switch blk.Kind {
	case document.Heading1:
		return "# " + markdownInlines(blk.Items[0])
	case document.Heading2:
		return "## " + markdownInlines(blk.Items[0])
	case document.Quote:
		lines := strings.Split(markdownInlines(blk.Items[0]), "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n")
	case document.Code:
		return "```\n" + blk.Text() + "\n```"
	case document.BulletList:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = "- " + markdownInlines(item)
		}
		return strings.Join(lines, "\n")
	case document.NumberedList:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, markdownInlines(item))
		}
		return strings.Join(lines, "\n")
	default:
		return markdownInlines(blk.Items[0])
	}
}

func markdownInlines(item []document.Inline) string {
	var b strings.Builder
	for _, in := range item {
		s := in.Text
		if in.Format.Has(document.Underline) {
			s = "_" + s + "_"
		}
		if in.Format.Has(document.Italic) {
			s = "*" + s + "*"
		}
		if in.Format.Has(document.Bold) {
			s = "**" + s + "**"
		}
		b.WriteString(s)
	}
	return b.String()
}
