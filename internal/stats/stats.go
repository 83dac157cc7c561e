// Package stats appends one line per run to a growing statistics log,
// for longitudinal trend-plotting by external tooling. The log is
// write-once, append-forever: prior rows are never rewritten or
// deduplicated.
package stats

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/utc"

	"github.com/enbywiki/enbyscan/pkg/errors"
)

// Run is the measurement of one completed run.
type Run struct {
	// Date is the run date; only the calendar day is logged.
	Date utc.Time

	// Collated is the reconciled-row count.
	Collated int

	// Wikidata is the raw SPARQL record count.
	Wikidata int

	// ByLanguage holds each tracked language's raw category-fetch size,
	// in configured language order.
	ByLanguage []int
}

// Logger appends run statistics to one file.
type Logger struct {
	path  string
	langs []string
}

// New creates a statistics logger for the given path and language order.
func New(path string, langs []string) *Logger {
	return &Logger{path: path, langs: langs}
}

// Append writes exactly one row for the run, creating the file with a
// header row first when it does not exist yet. The row is written in a
// single write so concurrent readers never observe a partial line.
func (l *Logger) Append(run Run) error {
	if len(run.ByLanguage) != len(l.langs) {
		return &errors.ValidationError{
			Field:   "by_language",
			Value:   run.ByLanguage,
			Message: fmt.Sprintf("expected %d language counts, got %d", len(l.langs), len(run.ByLanguage)),
		}
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WrapIO("open", l.path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return errors.WrapIO("stat", l.path, err)
	}

	var b strings.Builder
	if info.Size() == 0 {
		b.WriteString(l.header())
	}
	b.WriteString(l.row(run))

	if _, err := file.WriteString(b.String()); err != nil {
		return errors.WrapIO("write", l.path, err)
	}
	return nil
}

// header builds the one-time header row.
func (l *Logger) header() string {
	var b strings.Builder
	b.WriteString("#date, collated, wikidata")
	for _, lang := range l.langs {
		b.WriteString(", ")
		b.WriteString(lang)
		b.WriteString("wiki")
	}
	b.WriteString("\n")
	return b.String()
}

// row builds one data row, ISO date first.
func (l *Logger) row(run Run) string {
	fields := make([]string, 0, 3+len(run.ByLanguage))
	fields = append(fields,
		run.Date.Format("2006-01-02"),
		strconv.Itoa(run.Collated),
		strconv.Itoa(run.Wikidata),
	)
	for _, count := range run.ByLanguage {
		fields = append(fields, strconv.Itoa(count))
	}
	return strings.Join(fields, ",") + "\n"
}
