package reconcile

import "github.com/enbywiki/enbyscan/pkg/sources"

// Class is the classification of one report cell, decided entirely here;
// the renderer only maps classes to colors.
type Class int

// Cell classifications.
const (
	// NoArticle means the language edition has no article for the person.
	NoArticle Class = iota

	// NonBinary means the source corroborates the non-binary assertion.
	NonBinary

	// Conflict means the source knows the person but does not corroborate
	// the assertion: the "binary gender?" signal the system exists to surface.
	Conflict
)

// Display texts for the three classifications.
const (
	TextNoArticle = "no article"
	TextConflict  = "binary gender?"
	TextNonBinary = "non-binary"
)

// String returns the cell's display text.
func (c Class) String() string {
	switch c {
	case NonBinary:
		return TextNonBinary
	case Conflict:
		return TextConflict
	default:
		return TextNoArticle
	}
}

// Cell is one per-language column of a reconciled row.
type Cell struct {
	// Title is the article title, "" when the edition has no article.
	Title string

	// Gender is the literal gender text asserted by the language's source,
	// "" when it asserted none.
	Gender string

	// Confirmed reports whether the category fetch corroborated
	// non-binary membership for this title.
	Confirmed bool

	// Class is the derived classification, computed after all joins.
	Class Class
}

// Text returns the cell's display text: the literal gender when a richer
// source supplied one, otherwise the classification's standard text.
func (c Cell) Text() string {
	if c.Class == NonBinary && c.Gender != "" {
		return c.Gender
	}
	return c.Class.String()
}

// Row is one reconciled record: everything every source knows about one
// person, with one cell per tracked language plus the Wikidata column.
type Row struct {
	// QID is the primary key when any source resolved one.
	QID string

	// Name is the display name: the first non-empty value probing the
	// Wikidata label, then each language title in configured order.
	Name string

	// Description comes from Wikidata when present.
	Description string

	// Cells maps language codes to per-language cells.
	Cells map[string]Cell

	// WikidataGender is the comma-joined gender text Wikidata asserts.
	WikidataGender string

	// WikidataClass classifies the Wikidata column.
	WikidataClass Class

	// fromWikidata records whether a Wikidata record seeded or joined
	// this row; it drives the Wikidata-column classification.
	fromWikidata bool
}

// Cell returns the row's cell for a language, zero-valued when the
// language never contributed.
func (r *Row) Cell(lang string) Cell {
	return r.Cells[lang]
}

// WikidataText returns the Wikidata column's display text.
func (r *Row) WikidataText() string {
	if r.WikidataClass == NonBinary && r.WikidataGender != "" {
		return r.WikidataGender
	}
	return r.WikidataClass.String()
}

// Flagged reports whether any column of the row carries the conflict
// signal and therefore needs human review.
func (r *Row) Flagged() bool {
	if r.WikidataClass == Conflict {
		return true
	}
	for _, cell := range r.Cells {
		if cell.Class == Conflict {
			return true
		}
	}
	return false
}

// FlaggedCells counts the row's conflict cells, Wikidata column included.
func (r *Row) FlaggedCells() int {
	n := 0
	if r.WikidataClass == Conflict {
		n++
	}
	for _, cell := range r.Cells {
		if cell.Class == Conflict {
			n++
		}
	}
	return n
}

// fillName applies the fill-forward rule to the display name.
func (r *Row) fillName(candidate string) {
	if r.Name == "" && candidate != "" {
		r.Name = candidate
	}
}

// fillCell applies the fill-forward rule field by field: a populated title
// or gender is never overwritten by a later-joined source, and confirmation
// is monotonic.
func (r *Row) fillCell(lang string, record sources.Record, confirmed bool) {
	cell := r.Cells[lang]
	if cell.Title == "" {
		cell.Title = record.Title
	}
	if cell.Gender == "" {
		cell.Gender = record.Gender()
	}
	if confirmed {
		cell.Confirmed = true
	}
	r.Cells[lang] = cell
}
