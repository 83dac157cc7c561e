package petscan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enbywiki/enbyscan/pkg/errors"
	"github.com/enbywiki/enbyscan/pkg/sources"
)

const membersResponse = `{
  "*": [
    {
      "a": {
        "*": [
          {"title": "Alok_Vaid-Menon", "metadata": {"wikidata": "Q56882185"}},
          {"title": "Sam_Smith", "metadata": {"wikidata": "Q155655"}},
          {"title": "Page_without_item", "metadata": {}},
          {"metadata": {"wikidata": "Q999"}}
        ]
      }
    }
  ]
}`

func TestCategoryMembers(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(membersResponse))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	records, err := client.CategoryMembers(context.Background(), "en", "Non-binary_people", 10)
	require.NoError(t, err)

	// Pages without a Wikidata item or title are excluded, not errors.
	require.Len(t, records, 2)

	assert.Equal(t, sources.ID("enwiki"), records[0].SourceID)
	assert.Equal(t, "Q56882185", records[0].QID)
	assert.Equal(t, "Alok Vaid-Menon", records[0].Title, "underscores normalize to spaces")
	assert.Equal(t, []string{"non-binary"}, records[0].GenderLabels)

	// The request carries the category-expansion parameter set.
	assert.Equal(t, "en", gotQuery["language"])
	assert.Equal(t, "wikipedia", gotQuery["project"])
	assert.Equal(t, "Non-binary_people", gotQuery["categories"])
	assert.Equal(t, "10", gotQuery["depth"])
	assert.Equal(t, "json", gotQuery["format"])
	assert.Equal(t, "any", gotQuery["wikidata_item"])
}

func TestCategoryMembersEmptyCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"*": [{"a": {"*": []}}]}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	records, err := client.CategoryMembers(context.Background(), "de", "Nichtbinäre_Person", 6)
	require.NoError(t, err, "an empty category is a valid zero-length result")
	assert.Empty(t, records)
}

func TestCategoryMembersServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	_, err := client.CategoryMembers(context.Background(), "en", "Non-binary_people", 10)
	require.Error(t, err)
	assert.True(t, errors.IsBadResponse(err))
}

func TestCategoryMembersMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"*": [`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	_, err := client.CategoryMembers(context.Background(), "en", "Non-binary_people", 10)
	require.Error(t, err)
	assert.True(t, errors.IsBadResponse(err), "malformed payload counts as a bad response")
}

func TestCategoryMembersTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(server.URL, time.Second)
	_, err := client.CategoryMembers(context.Background(), "en", "Non-binary_people", 10)
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}
