package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enbywiki/enbyscan/pkg/errors"
)

func TestExtractQID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "http entity URL",
			url:  "http://www.wikidata.org/entity/Q56882185",
			want: "Q56882185",
		},
		{
			name: "https entity URL",
			url:  "https://www.wikidata.org/entity/Q1",
			want: "Q1",
		},
		{
			name:    "wiki page URL is not an entity URL",
			url:     "https://www.wikidata.org/wiki/Q42",
			wantErr: true,
		},
		{
			name:    "prefix shorter than expected",
			url:     "http://wikidata.org/Q42",
			wantErr: true,
		},
		{
			name:    "empty suffix",
			url:     "http://www.wikidata.org/entity/",
			wantErr: true,
		},
		{
			name:    "non-numeric suffix",
			url:     "http://www.wikidata.org/entity/Lexeme123",
			wantErr: true,
		},
		{
			name:    "leading zero",
			url:     "http://www.wikidata.org/entity/Q042",
			wantErr: true,
		},
		{
			name:    "empty input",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractQID(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsMalformedIdentity(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "Alok Vaid-Menon", NormalizeTitle("Alok_Vaid-Menon"))
	assert.Equal(t, "already spaced", NormalizeTitle("already spaced"))
	assert.Equal(t, "", NormalizeTitle(""))
}

func TestRecordGender(t *testing.T) {
	assert.Equal(t, "", Record{}.Gender())
	assert.Equal(t, "non-binary", Record{GenderLabels: []string{"non-binary"}}.Gender())
	assert.Equal(t, "non-binary, genderqueer", Record{GenderLabels: []string{"non-binary", "genderqueer"}}.Gender())
}

func TestForWiki(t *testing.T) {
	assert.Equal(t, ID("enwiki"), ForWiki("en"))
	assert.Equal(t, "dewiki", ForWiki("de").String())
}
