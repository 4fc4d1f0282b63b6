package export

import (
	"fmt"

	"github.com/D3nams/Notepad/internal/document"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; }
        h1 { color: #333; border-bottom: 2px solid #eee; padding-bottom: 10px; }
        .metadata { color: #666; font-size: 0.9em; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; }
        blockquote { border-left: 4px solid #ddd; margin: 0; padding-left: 20px; color: #666; }
        pre { background: #f5f5f5; padding: 15px; border-radius: 5px; overflow-x: auto; }
        code { background: #f0f0f0; padding: 2px 4px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>%s</h1>
    <div class="content">%s</div>
    <div class="metadata">
        <p><strong>Created:</strong> %s</p>
        <p><strong>Last Updated:</strong> %s</p>
    </div>
</body>
</html>`

// renderHTML wraps the serialized markup body in a standalone page. The
// body is already escaped by the serializer; only the title needs it here.
func renderHTML(req Request) ([]byte, error) {
	title := document.EscapeText(req.Title)
	page := fmt.Sprintf(htmlPage, title, title, req.Doc.Serialize(),
		stamp(req.CreatedAt), stamp(req.UpdatedAt))
	return []byte(page), nil
}
