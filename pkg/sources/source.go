// Package sources defines the record and identity types shared by all
// external source readers. Each reader returns flat records describing one
// observation about one person; the reconcile package joins them on QID.
package sources

import "strings"

// ID identifies which external collaborator produced a record,
// e.g. "dewiki" for the German Wikipedia category fetch or "wikidata"
// for the SPARQL endpoint.
type ID string

// Wikidata is the source ID of the SPARQL endpoint.
const Wikidata ID = "wikidata"

// ForWiki returns the source ID of a language edition's category fetch,
// e.g. "enwiki" for lang "en".
func ForWiki(lang string) ID {
	return ID(lang + "wiki")
}

// String returns the source ID as a string.
func (id ID) String() string {
	return string(id)
}

// Record is one observation from one source about one person.
//
// A record from a category fetch carries QID, Title and a single asserted
// gender label (category membership is itself the assertion). A record from
// Wikidata carries QID, Label, Description, the aggregated gender labels,
// and one title per language edition the SPARQL query could resolve.
type Record struct {
	SourceID ID

	// QID is the Wikidata identifier, empty when the source could not
	// resolve one.
	QID string

	// Title is the per-language article title for single-language sources.
	Title string

	// Label and Description are display strings, Wikidata only.
	Label       string
	Description string

	// GenderLabels is the set of gender-identity strings this source
	// asserts. Empty means "no gender statement found", which is distinct
	// from confirmed category membership.
	GenderLabels []string

	// Titles maps language codes to article titles for multi-language
	// sources (the Wikidata query resolves sitelinks itself).
	Titles map[string]string
}

// HasQID reports whether the record carries a Wikidata identifier.
func (r Record) HasQID() bool {
	return r.QID != ""
}

// Gender returns the record's gender labels joined for display,
// or "" when the source asserted none.
func (r Record) Gender() string {
	return strings.Join(r.GenderLabels, ", ")
}

// NormalizeTitle rewrites a category-API title into its human-facing form
// so titles from different sources compare equal. Category APIs use
// underscores where article titles use spaces.
func NormalizeTitle(title string) string {
	return strings.ReplaceAll(title, "_", " ")
}
