// Package report renders the reconciled table as a self-contained HTML
// document. All conflict decisions are baked into cell classifications
// before this stage runs; rendering is pure formatting.
//
// Titles and descriptions are user-supplied wiki text, so the document is
// built with html/template rather than string interpolation: escaping is
// guaranteed in both element and URL context.
package report

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/agentstation/utc"

	"github.com/enbywiki/enbyscan/internal/config"
	"github.com/enbywiki/enbyscan/pkg/errors"
	"github.com/enbywiki/enbyscan/pkg/reconcile"
)

//go:embed template.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "template.html"))

// Color classes per classification.
const (
	classNonBinary = "nonbinary"
	classNoArticle = "missing"
	classConflict  = "wrong"
)

// cell is one rendered table cell.
type cell struct {
	Class string
	Text  string
	Link  string // "" renders unlinked
}

// row is one rendered table row.
type row struct {
	Name        string
	Description string
	Error       bool
	Cells       []cell
	Wikidata    cell
}

// summary is the report footer.
type summary struct {
	People       int
	FlaggedCells int
	FlaggedRows  int
	GeneratedAt  string
}

// page data for the template.
type data struct {
	Languages []config.Language
	Rows      []row
	Summary   summary
}

// Render formats the reconciled table as a complete HTML document.
// Rendering the same table twice produces byte-identical output except
// for the embedded timestamp.
func Render(rows []reconcile.Row, languages []config.Language, generatedAt utc.Time) ([]byte, error) {
	d := data{
		Languages: languages,
		Rows:      make([]row, 0, len(rows)),
		Summary: summary{
			People:      len(rows),
			GeneratedAt: generatedAt.Format("2006-01-02 15:04:05 UTC"),
		},
	}

	for i := range rows {
		r := renderRow(&rows[i], languages)
		if r.Error {
			d.Summary.FlaggedRows++
		}
		d.Summary.FlaggedCells += rows[i].FlaggedCells()
		d.Rows = append(d.Rows, r)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, d); err != nil {
		return nil, errors.WrapIO("render", "report template", err)
	}
	return buf.Bytes(), nil
}

// renderRow maps one reconciled row onto its rendered form.
func renderRow(source *reconcile.Row, languages []config.Language) row {
	r := row{
		Name:        source.Name,
		Description: source.Description,
		Error:       source.Flagged(),
		Cells:       make([]cell, 0, len(languages)),
	}

	for _, lang := range languages {
		c := source.Cell(lang.Code)
		rendered := cell{
			Class: cssClass(c.Class),
			Text:  c.Text(),
		}
		if c.Title != "" {
			rendered.Link = "https://" + lang.Code + ".wikipedia.org/wiki/" + c.Title
		}
		r.Cells = append(r.Cells, rendered)
	}

	r.Wikidata = cell{
		Class: cssClass(source.WikidataClass),
		Text:  source.WikidataText(),
	}
	if source.QID != "" {
		r.Wikidata.Link = "https://www.wikidata.org/wiki/" + source.QID
	}

	return r
}

// cssClass maps a classification to its color class.
func cssClass(c reconcile.Class) string {
	switch c {
	case reconcile.NonBinary:
		return classNonBinary
	case reconcile.Conflict:
		return classConflict
	default:
		return classNoArticle
	}
}
