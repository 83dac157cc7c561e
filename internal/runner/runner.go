// Package runner orchestrates one full run: fetch every source, reconcile,
// then write the statistics line and the HTML report.
//
// Runs are strictly sequential and all-or-nothing: every fetch must
// succeed before reconciliation starts, and no output file is touched
// until the report has rendered. The language fetches have no ordering
// dependency between them, but reconciliation is a barrier: it waits for
// all reader results.
package runner

import (
	"context"
	"os"

	"github.com/agentstation/utc"

	"github.com/enbywiki/enbyscan/internal/config"
	"github.com/enbywiki/enbyscan/internal/report"
	"github.com/enbywiki/enbyscan/internal/stats"
	"github.com/enbywiki/enbyscan/pkg/errors"
	"github.com/enbywiki/enbyscan/pkg/logging"
	"github.com/enbywiki/enbyscan/pkg/reconcile"
	"github.com/enbywiki/enbyscan/pkg/sources"
)

// CategorySource reads category membership for one language edition.
type CategorySource interface {
	CategoryMembers(ctx context.Context, lang, category string, depth int) ([]sources.Record, error)
}

// EntitySource reads person entities from the entity graph.
type EntitySource interface {
	People(ctx context.Context, langs []string) ([]sources.Record, error)
	PeopleByTitles(ctx context.Context, lang string, titles []string) ([]sources.Record, error)
}

// Summary reports what one run produced.
type Summary struct {
	Rows          int
	WikidataCount int
	// LanguageCounts holds raw category-fetch sizes in configured order.
	LanguageCounts []int
	FlaggedRows    int
}

// Runner executes runs against one configuration.
type Runner struct {
	cfg        *config.Config
	categories CategorySource
	entities   EntitySource

	// backfill resolves entity data for category hits the people query
	// missed, with one extra VALUES query per affected language.
	backfill bool
}

// New creates a runner.
func New(cfg *config.Config, categories CategorySource, entities EntitySource, backfill bool) *Runner {
	return &Runner{
		cfg:        cfg,
		categories: categories,
		entities:   entities,
		backfill:   backfill,
	}
}

// Run performs one complete run and writes the report to outputPath.
func (r *Runner) Run(ctx context.Context, outputPath string) (*Summary, error) {
	logger := logging.FromContext(ctx)
	langs := r.cfg.Codes()

	byLang := make(map[string][]sources.Record, len(langs))
	counts := make([]int, 0, len(langs))
	for _, lang := range r.cfg.Languages {
		records, err := r.categories.CategoryMembers(ctx, lang.Code, lang.Category, lang.Depth)
		if err != nil {
			return nil, err
		}
		byLang[lang.Code] = records
		counts = append(counts, len(records))
		logger.Info().
			Str("source", sources.ForWiki(lang.Code).String()).
			Str("category", lang.Category).
			Int("records", len(records)).
			Msg("Fetched category members")
	}

	wikidata, err := r.entities.People(ctx, langs)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("source", sources.Wikidata.String()).
		Int("records", len(wikidata)).
		Msg("Fetched people from SPARQL")

	if r.backfill {
		wikidata, err = r.backfillMissing(ctx, wikidata, byLang)
		if err != nil {
			return nil, err
		}
	}

	rows := reconcile.Reconcile(wikidata, byLang, langs)

	summary := &Summary{
		Rows:           len(rows),
		WikidataCount:  len(wikidata),
		LanguageCounts: counts,
	}
	for i := range rows {
		if rows[i].Flagged() {
			summary.FlaggedRows++
		}
	}

	// Render before touching any file so a failed run leaves no output.
	html, err := report.Render(rows, r.cfg.Languages, utc.Now())
	if err != nil {
		return nil, err
	}

	statsLog := stats.New(r.cfg.StatsPath, langs)
	if err := statsLog.Append(stats.Run{
		Date:       utc.Now(),
		Collated:   len(rows),
		Wikidata:   len(wikidata),
		ByLanguage: counts,
	}); err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, html, 0o644); err != nil {
		return nil, errors.WrapIO("write", outputPath, err)
	}

	return summary, nil
}

// backfillMissing looks up entity data for category records whose QIDs the
// people query never returned, and appends the results to the Wikidata
// record set. Titles with no item stay category-only rows.
func (r *Runner) backfillMissing(ctx context.Context, wikidata []sources.Record, byLang map[string][]sources.Record) ([]sources.Record, error) {
	known := make(map[string]bool, len(wikidata))
	for _, record := range wikidata {
		known[record.QID] = true
	}

	for _, lang := range r.cfg.Codes() {
		var titles []string
		for _, record := range byLang[lang] {
			if record.HasQID() && !known[record.QID] {
				titles = append(titles, record.Title)
			}
		}
		if len(titles) == 0 {
			continue
		}

		extra, err := r.entities.PeopleByTitles(ctx, lang, titles)
		if err != nil {
			return nil, err
		}
		logging.FromContext(ctx).Info().
			Str("lang", lang).
			Int("titles", len(titles)).
			Int("resolved", len(extra)).
			Msg("Backfilled entity data for category-only titles")

		for _, record := range extra {
			if !known[record.QID] {
				known[record.QID] = true
				wikidata = append(wikidata, record)
			}
		}
	}

	return wikidata, nil
}
