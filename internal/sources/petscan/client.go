// Package petscan reads category membership from the PetScan
// category-expansion service. One query returns every article reachable
// from a language edition's non-binary-people category within the
// configured subcategory depth.
package petscan

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/enbywiki/enbyscan/internal/transport"
	"github.com/enbywiki/enbyscan/pkg/logging"
	"github.com/enbywiki/enbyscan/pkg/sources"
)

// nonBinaryLabel is the gender assertion carried by category membership.
// The category fetch has no richer gender text than the membership itself.
const nonBinaryLabel = "non-binary"

// Response mirrors the PetScan JSON envelope. The service nests its result
// pages under a batch list keyed "*".
type Response struct {
	Batches []Batch `json:"*"`
}

// Batch is one PetScan result batch.
type Batch struct {
	Articles ArticleList `json:"a"`
}

// ArticleList holds the pages of a batch.
type ArticleList struct {
	Pages []Page `json:"*"`
}

// Page is one article in the category graph.
type Page struct {
	Title    string       `json:"title"`
	Metadata PageMetadata `json:"metadata"`
}

// PageMetadata carries the page's Wikidata item, when one exists.
type PageMetadata struct {
	Wikidata string `json:"wikidata"`
}

// Client fetches category members for one language edition.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// New creates a PetScan client against the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		transport: transport.New("petscan", timeout),
	}
}

// CategoryMembers returns one record per article tagged, directly or via
// subcategory, under the category on the given language edition.
//
// Pages without a Wikidata item are excluded, not errors: without a QID
// they cannot be reconciled by identity. An empty category is a valid
// zero-length result.
func (c *Client) CategoryMembers(ctx context.Context, lang, category string, depth int) ([]sources.Record, error) {
	params := url.Values{}
	params.Set("language", lang)
	params.Set("project", "wikipedia")
	params.Set("categories", category)
	params.Set("depth", strconv.Itoa(depth))
	params.Set("format", "json")
	params.Set("ns[0]", "1") // articles only, not subcategory or talk pages
	params.Set("doit", "1")
	params.Set("wikidata_item", "any")
	params.Set("common_wiki", "auto")

	resp, err := c.transport.Get(ctx, c.baseURL, params, nil)
	if err != nil {
		return nil, err
	}

	var result Response
	if err := transport.DecodeResponse("petscan", resp, &result); err != nil {
		return nil, err
	}

	sourceID := sources.ForWiki(lang)
	var records []sources.Record
	skipped := 0
	for _, batch := range result.Batches {
		for _, page := range batch.Articles.Pages {
			if page.Metadata.Wikidata == "" || page.Title == "" {
				skipped++
				continue
			}
			records = append(records, sources.Record{
				SourceID:     sourceID,
				QID:          page.Metadata.Wikidata,
				Title:        sources.NormalizeTitle(page.Title),
				GenderLabels: []string{nonBinaryLabel},
			})
		}
	}

	logging.FromContext(ctx).Debug().
		Str("source", sourceID.String()).
		Str("category", category).
		Int("records", len(records)).
		Int("skipped_without_item", skipped).
		Msg("Parsed PetScan response")

	return records, nil
}
