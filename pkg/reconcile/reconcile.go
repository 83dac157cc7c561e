// Package reconcile merges per-source observations about people into one
// table keyed by Wikidata QID.
//
// The merge is an explicit keyed outer join: Wikidata records seed the
// table, then each tracked language's category records join in configured
// order. Fields fill forward, never backward: once a join has populated a
// field, a later source can only fill fields that are still empty. After
// all joins, each (row, language) pair and the Wikidata column are
// classified as non-binary, conflicting ("binary gender?"), or absent.
package reconcile

import (
	"sort"
	"strings"

	"github.com/enbywiki/enbyscan/pkg/sources"
)

// Reconcile joins the Wikidata record set and the per-language category
// record sets into one sorted table.
//
// langs fixes both the join order and the display-name fallback order.
// Every input record is represented in exactly one output row, and no two
// QID-bearing rows share a QID.
func Reconcile(wikidata []sources.Record, categories map[string][]sources.Record, langs []string) []Row {
	t := newTable(langs)

	for _, record := range wikidata {
		t.seed(record)
	}

	for _, lang := range langs {
		for _, record := range categories[lang] {
			t.join(lang, record)
		}
	}

	t.classify()
	return t.sorted()
}

// table is the running reconciliation state: a row builder per join key.
type table struct {
	langs []string

	// byQID holds rows keyed by QID.
	byQID map[string]*Row

	// byTitle holds QID-less rows keyed by lang plus normalized title.
	// QID-less records never merge across languages: without a QID there
	// is no evidence two titles denote the same person.
	byTitle map[string]*Row

	// labels carries each row's Wikidata label until name resolution.
	labels map[*Row]string

	// order preserves insertion order so classification and sorting are
	// deterministic regardless of map iteration.
	order []*Row
}

func newTable(langs []string) *table {
	return &table{
		langs:   langs,
		byQID:   make(map[string]*Row),
		byTitle: make(map[string]*Row),
		labels:  make(map[*Row]string),
	}
}

// seed merges one Wikidata record into the table. Duplicate binding rows
// for one QID collapse into one row, fields filling forward.
func (t *table) seed(record sources.Record) {
	row := t.rowForQID(record.QID)
	row.fromWikidata = true

	if t.labels[row] == "" {
		t.labels[row] = record.Label
	}
	if row.Description == "" {
		row.Description = record.Description
	}
	if row.WikidataGender == "" {
		row.WikidataGender = record.Gender()
	}

	// The SPARQL query resolves sitelinks itself; carry them into the
	// per-language cells as uncorroborated titles.
	for _, lang := range t.langs {
		if title := record.Titles[lang]; title != "" {
			row.fillCell(lang, sources.Record{Title: title}, false)
		}
	}
}

// join merges one category record for one language. A record with no
// matching QID starts a new row rather than being dropped.
func (t *table) join(lang string, record sources.Record) {
	var row *Row
	if record.HasQID() {
		row = t.rowForQID(record.QID)
	} else {
		row = t.rowForTitle(lang, record.Title)
	}

	// Category membership is the corroboration signal.
	row.fillCell(lang, record, true)
}

// rowForQID returns the row for a QID, creating it on first sight.
func (t *table) rowForQID(qid string) *Row {
	if row, ok := t.byQID[qid]; ok {
		return row
	}
	row := &Row{QID: qid, Cells: make(map[string]Cell)}
	t.byQID[qid] = row
	t.order = append(t.order, row)
	return row
}

// rowForTitle returns the QID-less row for a language-scoped title.
func (t *table) rowForTitle(lang, title string) *Row {
	key := lang + ":" + title
	if row, ok := t.byTitle[key]; ok {
		return row
	}
	row := &Row{Cells: make(map[string]Cell)}
	t.byTitle[key] = row
	t.order = append(t.order, row)
	return row
}

// classify computes every cell class and resolves display names, after all
// joins have run.
func (t *table) classify() {
	for _, row := range t.order {
		for _, lang := range t.langs {
			cell := row.Cells[lang]
			switch {
			case cell.Title == "":
				cell.Class = NoArticle
			case cell.Confirmed:
				cell.Class = NonBinary
			default:
				cell.Class = Conflict
			}
			row.Cells[lang] = cell
		}

		// The Wikidata column corroborates only when Wikidata itself knows
		// the person and asserts a gender; a category-only row shows the
		// conflict signal there.
		if row.fromWikidata && row.WikidataGender != "" {
			row.WikidataClass = NonBinary
		} else {
			row.WikidataClass = Conflict
		}

		row.fillName(t.labels[row])
		for _, lang := range t.langs {
			row.fillName(row.Cells[lang].Title)
		}
	}
}

// sorted returns the final rows ordered by name ascending in byte order.
// Absent names sort as the empty string, i.e. first. Equal names break by
// QID ascending, QID-less rows last among equals, then by title so the
// order is fully deterministic.
func (t *table) sorted() []Row {
	rows := make([]Row, len(t.order))
	for i, row := range t.order {
		rows[i] = *row
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := strings.Compare(rows[i].Name, rows[j].Name); c != 0 {
			return c < 0
		}
		a, b := rows[i].QID, rows[j].QID
		if (a == "") != (b == "") {
			return a != ""
		}
		if a != b {
			return a < b
		}
		return firstTitle(rows[i], t.langs) < firstTitle(rows[j], t.langs)
	})

	return rows
}

// firstTitle returns a row's first populated title in language order,
// used only as a final sort tie-break.
func firstTitle(row Row, langs []string) string {
	for _, lang := range langs {
		if title := row.Cells[lang].Title; title != "" {
			return title
		}
	}
	return ""
}
