// Package handbook renders the knowledge catalog as a printable HTML guest
// handbook.
package handbook

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
)

// Catalog provides the entries to print.
type Catalog interface {
	Catalog() []knowledge.Entry
}

type pageData struct {
	Title   string
	Content template.HTML
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.55; color: #222; }
h1 { border-bottom: 2px solid #c0392b; padding-bottom: .3rem; }
h2 { margin-top: 2rem; color: #c0392b; }
nav ul { columns: 2; }
@media print { nav { display: none; } }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`

// Renderer turns catalog entries into a handbook page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// NewRenderer creates a renderer. Raw HTML inside entries is not rendered.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAttribute()),
		),
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Markdown builds the handbook source: a contents list followed by one
// section per entry, in catalog order.
func Markdown(hotelName string, entries []knowledge.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s guest handbook\n\n", hotelName)
	if len(entries) == 0 {
		sb.WriteString("Ask reception for anything you need during your stay.\n")
		return sb.String()
	}

	for _, e := range entries {
		fmt.Fprintf(&sb, "- [%s](#%s)\n", e.Topic, anchor(e.Category))
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n## %s {#%s}\n\n%s\n", e.Topic, anchor(e.Category), e.Content)
	}
	sb.WriteString("\n---\n\nReception is available 24/7 for anything not covered here.\n")
	return sb.String()
}

// Render writes the HTML handbook for entries to w.
func (r *Renderer) Render(w io.Writer, hotelName string, entries []knowledge.Entry) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(Markdown(hotelName, entries)), &body); err != nil {
		return fmt.Errorf("rendering handbook markdown: %w", err)
	}
	return r.tmpl.Execute(w, pageData{
		Title:   hotelName + " guest handbook",
		Content: template.HTML(body.String()),
	})
}

// RegisterRoutes mounts GET /handbook.
func RegisterRoutes(r chi.Router, hotelName string, catalog Catalog) {
	renderer := NewRenderer()
	r.Get("/handbook", func(w http.ResponseWriter, req *http.Request) {
		var buf bytes.Buffer
		if err := renderer.Render(&buf, hotelName, catalog.Catalog()); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
}

// anchor makes a category usable as a fragment id.
func anchor(category string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(category) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
