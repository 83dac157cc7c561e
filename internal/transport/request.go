package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/enbywiki/enbyscan/pkg/errors"
	"github.com/enbywiki/enbyscan/pkg/logging"
)

// DecodeResponse decodes a JSON response into the target structure.
// A non-200 status or a malformed body is a fatal BadResponse error;
// readers never degrade to partial output.
func DecodeResponse(source string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("source", source).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Message:    truncate(string(body), 512),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", source, err)
	}

	return nil
}

// truncate bounds error messages built from response bodies.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
