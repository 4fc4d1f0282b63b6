package export

import (
	"fmt"
	"strings"
)

// sqlQuote doubles single quotes for a SQL string literal.
func sqlQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

const sqlScript = `-- %s
-- Generated on %s

CREATE TABLE IF NOT EXISTS notes (
    id VARCHAR(255) PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT,
    categories TEXT,
    created_at TIMESTAMP,
    updated_at TIMESTAMP
);

INSERT INTO notes (id, title, content, categories, created_at, updated_at) VALUES (
    '%s',
    '%s',
    '%s',
    '%s',
    '%s',
    '%s'
);

-- Query to retrieve this note:
-- SELECT * FROM notes WHERE id = '%s';`

func renderSQL(req Request) ([]byte, error) {
	id := sqlQuote(req.ID)
	script := fmt.Sprintf(sqlScript,
		req.Title,
		stamp(req.ExportedAt),
		id,
		sqlQuote(req.Title),
		sqlQuote(req.Doc.PlainText()),
		sqlQuote(strings.Join(req.Categories, ", ")),
		iso(req.CreatedAt),
		iso(req.UpdatedAt),
		id,
	)
	return []byte(script), nil
}
