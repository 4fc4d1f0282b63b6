package export

import (
	"strings"

	"github.com/D3nams/Notepad/internal/document"
)

const headingRule = 50

// renderText emits the plain-text rendering: title underlined to its own
// length, headings underlined with a fixed-width rule, formats dropped.
func renderText(req Request) ([]byte, error) {
	var b strings.Builder
	b.WriteString(req.Title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len(req.Title)))
	b.WriteString("\n\n")

	blocks := make([]string, 0, len(req.Doc.Blocks))
	for _, blk := range req.Doc.Blocks {
		blocks = append(blocks, textBlock(blk))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))

	b.WriteString("\n\n---\n")
	b.WriteString("Created: " + stamp(req.CreatedAt) + "\n")
	b.WriteString("Last Updated: " + stamp(req.UpdatedAt))
	return []byte(b.String()), nil
}

func textBlock(blk document.Block) string {
	switch blk.Kind {
	case document.Heading1, document.Heading2:
		return blk.Text() + "\n" + strings.Repeat("=", headingRule)
	case document.BulletList, document.NumberedList:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = document.ItemText(item)
		}
		return strings.Join(lines, "\n")
	case document.Quote, document.Code, document.Paragraph:
		return blk.Text()
	default:
		return blk.Text()
	}
}
