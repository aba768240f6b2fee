package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
)

// upstreamErrorBody covers the error shapes the Luxus backend returns:
// either {"error": "..."} or {"message": "..."}.
type upstreamErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the response body carries an error or
// message field it is preserved; otherwise the raw body is used.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed but not closed.
func ParseResponseError(resp *http.Response, operation string) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	var upstream upstreamErrorBody
	if json.Unmarshal(bodyBytes, &upstream) == nil {
		msg := upstream.Error
		if msg == "" {
			msg = upstream.Message
		}
		if msg != "" {
			return apperrors.FromHTTPStatus(resp.StatusCode, fmt.Sprintf("%s: %s", operation, msg))
		}
	}

	return apperrors.FromHTTPStatus(resp.StatusCode, fmt.Sprintf("%s: status %d: %s", operation, resp.StatusCode, string(bodyBytes)))
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors should not be retried: the request itself was invalid.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
