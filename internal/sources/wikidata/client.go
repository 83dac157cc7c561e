// Package wikidata reads person entities from the Wikidata SPARQL endpoint.
// One query returns every person whose gender-identity property transitively
// specializes the non-binary-gender concept, with gender label text and one
// linked article title per tracked language edition.
package wikidata

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/enbywiki/enbyscan/internal/transport"
	"github.com/enbywiki/enbyscan/pkg/logging"
	"github.com/enbywiki/enbyscan/pkg/sources"
)

// Response mirrors the SPARQL JSON results envelope.
type Response struct {
	Results Results `json:"results"`
}

// Results holds the binding rows.
type Results struct {
	Bindings []Binding `json:"bindings"`
}

// Binding is one result row: a flat map from variable name to value.
type Binding map[string]Value

// Value is one SPARQL binding value.
type Value struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// get returns a bound variable's value, or "" when the variable is unbound.
func (b Binding) get(name string) string {
	return b[name].Value
}

// Client runs SPARQL queries against one endpoint.
type Client struct {
	endpoint  string
	transport *transport.Client
}

// New creates a Wikidata client against the given SPARQL endpoint.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		transport: transport.New(string(sources.Wikidata), timeout),
	}
}

// People returns one record per person the non-binary-gender query matches,
// with sitelink titles resolved for the given language editions.
func (c *Client) People(ctx context.Context, langs []string) ([]sources.Record, error) {
	return c.query(ctx, peopleQuery(langs), langs)
}

// PeopleByTitles resolves article titles of one language edition to their
// entities. Titles that have no item on Wikidata yield no record.
func (c *Client) PeopleByTitles(ctx context.Context, lang string, titles []string) ([]sources.Record, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	return c.query(ctx, titlesQuery(lang, titles), []string{lang})
}

// query runs a SPARQL query and converts each binding row into a record.
func (c *Client) query(ctx context.Context, query string, langs []string) ([]sources.Record, error) {
	params := url.Values{}
	params.Set("query", query)

	headers := http.Header{}
	headers.Set("Accept", "application/sparql-results+json")

	resp, err := c.transport.Get(ctx, c.endpoint, params, headers)
	if err != nil {
		return nil, err
	}

	var result Response
	if err := transport.DecodeResponse(string(sources.Wikidata), resp, &result); err != nil {
		return nil, err
	}

	records := make([]sources.Record, 0, len(result.Results.Bindings))
	for _, binding := range result.Results.Bindings {
		record, err := c.record(binding, langs)
		if err != nil {
			// A malformed entity URL is surfaced, never passed on as
			// corrupt data into the merge.
			return nil, err
		}
		records = append(records, record)
	}

	logging.FromContext(ctx).Debug().
		Str("source", string(sources.Wikidata)).
		Int("records", len(records)).
		Msg("Parsed SPARQL response")

	return records, nil
}

// record converts one binding row into a source record.
func (c *Client) record(binding Binding, langs []string) (sources.Record, error) {
	qid, err := sources.ExtractQID(binding.get("person"))
	if err != nil {
		return sources.Record{}, err
	}

	record := sources.Record{
		SourceID:     sources.Wikidata,
		QID:          qid,
		Label:        binding.get("personLabel"),
		Description:  binding.get("personDescription"),
		GenderLabels: splitGenders(binding.get("genders")),
		Titles:       make(map[string]string, len(langs)),
	}

	for _, lang := range langs {
		if title := binding.get(lang + "wiki"); title != "" {
			record.Titles[lang] = sources.NormalizeTitle(title)
		}
	}

	return record, nil
}

// splitGenders splits the group_concat'ed gender string back into a set.
// An unbound variable means no gender statement, not an empty label.
func splitGenders(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ", ")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			labels = append(labels, part)
		}
	}
	return labels
}
