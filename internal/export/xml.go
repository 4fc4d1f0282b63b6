package export

import (
	"strings"

	"github.com/D3nams/Notepad/internal/document"
)

// cdata wraps free text for XML. A literal "]]>" would close the section
// early, so it is split across two adjoining sections.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

func renderXML(req Request) ([]byte, error) {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<note>\n")
	b.WriteString("    <id>" + document.EscapeText(req.ID) + "</id>\n")
	b.WriteString("    <title>" + cdata(req.Title) + "</title>\n")
	b.WriteString("    <content>" + cdata(req.Doc.Serialize()) + "</content>\n")
	b.WriteString("    <plainTextContent>" + cdata(req.Doc.PlainText()) + "</plainTextContent>\n")
	b.WriteString("    <categories>\n")
	for _, cat := range req.Categories {
		b.WriteString("        <category>" + document.EscapeText(cat) + "</category>\n")
	}
	b.WriteString("    </categories>\n")
	b.WriteString("    <createdAt>" + iso(req.CreatedAt) + "</createdAt>\n")
	b.WriteString("    <updatedAt>" + iso(req.UpdatedAt) + "</updatedAt>\n")
	b.WriteString("    <exportedAt>" + iso(req.ExportedAt) + "</exportedAt>\n")
	b.WriteString("</note>")
	return []byte(b.String()), nil
}
