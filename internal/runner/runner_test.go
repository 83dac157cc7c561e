package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enbywiki/enbyscan/internal/config"
	"github.com/enbywiki/enbyscan/pkg/errors"
	"github.com/enbywiki/enbyscan/pkg/sources"
)

type fakeCategories struct {
	records map[string][]sources.Record
	err     error
}

func (f *fakeCategories) CategoryMembers(_ context.Context, lang, _ string, _ int) ([]sources.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[lang], nil
}

type fakeEntities struct {
	people   []sources.Record
	byTitles map[string][]sources.Record
	err      error

	titleQueries map[string][]string
}

func (f *fakeEntities) People(context.Context, []string) ([]sources.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.people, nil
}

func (f *fakeEntities) PeopleByTitles(_ context.Context, lang string, titles []string) ([]sources.Record, error) {
	if f.titleQueries == nil {
		f.titleQueries = make(map[string][]string)
	}
	f.titleQueries[lang] = titles
	return f.byTitles[lang], nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Languages: []config.Language{
			{Code: "en", Name: "English", Category: "Non-binary_people", Depth: 10},
			{Code: "de", Name: "German", Category: "Nichtbinäre_Person", Depth: 10},
		},
		StatsPath: filepath.Join(dir, "stats.csv"),
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunWritesReportAndStats(t *testing.T) {
	cfg := testConfig(t)
	outputPath := filepath.Join(t.TempDir(), "comparison_table.html")

	categories := &fakeCategories{records: map[string][]sources.Record{
		"en": {{SourceID: sources.ForWiki("en"), QID: "Q1", Title: "Alice", GenderLabels: []string{"non-binary"}}},
	}}
	entities := &fakeEntities{people: []sources.Record{
		{SourceID: sources.Wikidata, QID: "Q1", Label: "Alice", GenderLabels: []string{"non-binary"}, Titles: map[string]string{"en": "Alice"}},
	}}

	summary, err := New(cfg, categories, entities, false).Run(context.Background(), outputPath)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, 1, summary.WikidataCount)
	assert.Equal(t, []int{1, 0}, summary.LanguageCounts)
	assert.Equal(t, 0, summary.FlaggedRows)

	html, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Alice")

	statsData, err := os.ReadFile(cfg.StatsPath)
	require.NoError(t, err)
	assert.Contains(t, string(statsData), "#date, collated, wikidata, enwiki, dewiki\n")
	assert.Contains(t, string(statsData), ",1,1,1,0\n")
}

func TestRunAbortsBeforeOutputOnFetchFailure(t *testing.T) {
	cfg := testConfig(t)
	outputPath := filepath.Join(t.TempDir(), "comparison_table.html")

	categories := &fakeCategories{err: errors.NewAPIError("petscan", 503, "overloaded")}
	entities := &fakeEntities{}

	_, err := New(cfg, categories, entities, false).Run(context.Background(), outputPath)
	require.Error(t, err)
	assert.True(t, errors.IsBadResponse(err))

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr), "no report on a failed run")
	_, statErr = os.Stat(cfg.StatsPath)
	assert.True(t, os.IsNotExist(statErr), "no stats line on a failed run")
}

func TestRunAbortsOnSPARQLFailure(t *testing.T) {
	cfg := testConfig(t)
	outputPath := filepath.Join(t.TempDir(), "comparison_table.html")

	categories := &fakeCategories{}
	entities := &fakeEntities{err: errors.NewAPIError("wikidata", 0, "timeout")}

	_, err := New(cfg, categories, entities, false).Run(context.Background(), outputPath)
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunBackfill(t *testing.T) {
	cfg := testConfig(t)
	outputPath := filepath.Join(t.TempDir(), "comparison_table.html")

	// Q2 appears only in the category fetch; backfill resolves it.
	categories := &fakeCategories{records: map[string][]sources.Record{
		"en": {
			{SourceID: sources.ForWiki("en"), QID: "Q1", Title: "Alice", GenderLabels: []string{"non-binary"}},
			{SourceID: sources.ForWiki("en"), QID: "Q2", Title: "Beck", GenderLabels: []string{"non-binary"}},
		},
	}}
	entities := &fakeEntities{
		people: []sources.Record{
			{SourceID: sources.Wikidata, QID: "Q1", Label: "Alice", GenderLabels: []string{"non-binary"}, Titles: map[string]string{"en": "Alice"}},
		},
		byTitles: map[string][]sources.Record{
			"en": {{SourceID: sources.Wikidata, QID: "Q2", Label: "Beck", Description: "musician", Titles: map[string]string{"en": "Beck"}}},
		},
	}

	summary, err := New(cfg, categories, entities, true).Run(context.Background(), outputPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"Beck"}, entities.titleQueries["en"], "only unresolved titles are queried")
	assert.Equal(t, 2, summary.WikidataCount, "backfilled records join the Wikidata set")
	assert.Equal(t, 2, summary.Rows)

	html, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "musician", "backfilled description reaches the report")
}
