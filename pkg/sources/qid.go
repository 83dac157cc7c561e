package sources

import (
	"regexp"
	"strings"

	"github.com/enbywiki/enbyscan/pkg/errors"
)

// entityPrefixes are the URL shapes under which the SPARQL endpoint
// returns entity identifiers.
var entityPrefixes = []string{
	"http://www.wikidata.org/entity/",
	"https://www.wikidata.org/entity/",
}

// qidPattern is the shape of a bare entity identifier.
var qidPattern = regexp.MustCompile(`^Q[1-9][0-9]*$`)

// ExtractQID derives the bare QID from a Wikidata entity URL.
//
// Anything that is not a well-formed entity URL fails loudly as a
// MalformedIdentityError rather than slicing a fixed offset and letting
// garbage propagate into the merge.
func ExtractQID(entityURL string) (string, error) {
	for _, prefix := range entityPrefixes {
		if rest, ok := strings.CutPrefix(entityURL, prefix); ok {
			if !qidPattern.MatchString(rest) {
				return "", errors.NewMalformedIdentityError(string(Wikidata), entityURL)
			}
			return rest, nil
		}
	}
	return "", errors.NewMalformedIdentityError(string(Wikidata), entityURL)
}
