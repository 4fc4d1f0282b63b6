package export

import (
	"strconv"
	"strings"
)

// csvField quotes unconditionally and doubles embedded quotes. The stdlib
// writer only quotes when forced, and the Field/Value layout here quotes
// every cell.
func csvField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func renderCSV(req Request) ([]byte, error) {
	rows := [][2]string{
		{"Field", "Value"},
		{"ID", req.ID},
		{"Title", req.Title},
		{"Content", req.Doc.PlainText()},
		{"Categories", strings.Join(req.Categories, "; ")},
		{"Created", iso(req.CreatedAt)},
		{"Updated", iso(req.UpdatedAt)},
		{"Word Count", strconv.Itoa(req.Doc.WordCount())},
		{"Character Count", strconv.Itoa(req.Doc.CharCount())},
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = csvField(row[0]) + "," + csvField(row[1])
	}
	return []byte(strings.Join(lines, "\n")), nil
}
