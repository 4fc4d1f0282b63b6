package export

import "strings"

var rtfEscaper = strings.NewReplacer(`\`, `\\`, "{", `\{`, "}", `\}`)

// renderRTF emits a minimal RTF document: bold title, paragraph breaks for
// newlines, control characters escaped so the group structure stays valid.
func renderRTF(req Request) ([]byte, error) {
	body := rtfEscaper.Replace(req.Doc.PlainText())
	body = strings.ReplaceAll(body, "\n", "\\par\n")

	var b strings.Builder
	b.WriteString("{\\rtf1\\ansi\\deff0 {\\fonttbl {\\f0 Times New Roman;}}\n")
	b.WriteString("\\f0\\fs24 {\\b " + rtfEscaper.Replace(req.Title) + "}\\par\n\\par\n")
	b.WriteString(body + "\\par\n\\par\n")
	b.WriteString("---\\par\n")
	b.WriteString("Created: " + stamp(req.CreatedAt) + "\\par\n")
	b.WriteString("Last Updated: " + stamp(req.UpdatedAt) + "\\par\n}")
	return []byte(b.String()), nil
}
