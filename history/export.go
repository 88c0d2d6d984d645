package history

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var exportMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ExportHTML renders entries as a standalone HTML page. Entry content
// is treated as markdown, rendered with goldmark, and sanitized with
// bluemonday; queries and the title are escaped verbatim.
func ExportHTML(w io.Writer, title string, entries []Entry) error {
	policy := bluemonday.UGCPolicy()

	if _, err := fmt.Fprintf(w, exportHeader, html.EscapeString(title), html.EscapeString(title)); err != nil {
		return fmt.Errorf("export history: %w", err)
	}

	for _, entry := range entries {
		var rendered bytes.Buffer
		if err := exportMarkdown.Convert([]byte(entry.Content), &rendered); err != nil {
			return fmt.Errorf("export history entry %s: %w", entry.ID, err)
		}
		safe := policy.SanitizeBytes(rendered.Bytes())

		_, err := fmt.Fprintf(w, exportEntry,
			html.EscapeString(entry.Query),
			entry.Time().Format(time.RFC3339),
			safe,
		)
		if err != nil {
			return fmt.Errorf("export history entry %s: %w", entry.ID, err)
		}
	}

	if _, err := io.WriteString(w, exportFooter); err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	return nil
}

const exportHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
article { border-bottom: 1px solid #ddd; padding: 1rem 0; }
h2 { margin-bottom: 0.25rem; }
time { color: #666; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>%s</h1>
`

const exportEntry = `<article>
<h2>%s</h2>
<time>%s</time>
<div>%s</div>
</article>
`

const exportFooter = `</body>
</html>
`
