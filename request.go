package idanalyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tsingmao/idanalyzer/internal/logger"
)

// post sends form to the endpoint joined with path and decodes the reply.
//
// The method adds the "apikey" and "client" fields, so callers pass only the
// action parameters. It is used by every action in the package.
//
// Parameters:
//   - ctx: Request context, passed to the HTTP request
//   - path: API path relative to the endpoint (empty for the endpoint itself)
//   - form: Action parameters; modified in place
//
// Returns:
//   - The decoded response
//   - *HTTPError for non-2xx replies, a wrapped error for network and
//     decode failures, or *APIError in strict mode
func (c *client) post(ctx context.Context, path string, form url.Values) (Response, error) {
	if form == nil {
		form = url.Values{}
	}
	form.Set("apikey", c.apiKey)
	form.Set("client", ClientLibrary)

	target := joinEndpoint(c.endpoint, path)
	logger.Debug("POST %s with %d fields", target, len(form))

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(target)
	if err != nil {
		logger.Debug("Failed to reach %s: %v", target, err)
		return nil, fmt.Errorf("failed to post to %s: %w", target, err)
	}

	if !resp.IsSuccess() {
		logger.Debug("Server returned status %d for %s", resp.StatusCode(), target)
		return nil, &HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       string(resp.Body()),
		}
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result == nil {
		result = Response{}
	}

	if c.throwAPIError {
		if apiErr := result.Err(); apiErr != nil {
			logger.Debug("API error %d from %s: %s", apiErr.Code, target, apiErr.Message)
			return nil, apiErr
		}
	}

	return result, nil
}
