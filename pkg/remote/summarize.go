package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dtnitsch/doc-summarizer/models"
)

type summarizeRequest struct {
	Text   string               `json:"text"`
	Length models.SummaryLength `json:"length"`
}

type summarizeResponse struct {
	Summary *string `json:"summary"`
	Error   string  `json:"error"`
}

// Summarize sends text with the length preference and returns the summary
// verbatim. Every failure, including a response without a summary field, is
// reported as models.ErrTransport.
func (c *Client) Summarize(ctx context.Context, text string, length models.SummaryLength) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: no text to summarize", models.ErrPrecondition)
	}
	if !length.Valid() {
		return "", fmt.Errorf("%w: %w", models.ErrPrecondition, models.ErrInvalidLength)
	}

	data, err := json.Marshal(summarizeRequest{Text: text, Length: length})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SummarizePath, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", models.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var parsed summarizeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode summarize response: %w", models.ErrTransport, err)
	}
	if parsed.Summary == nil {
		if parsed.Error != "" {
			c.logger.Warn("summarization rejected by service", "service_error", parsed.Error)
		}
		return "", fmt.Errorf("%w: response has no summary", models.ErrTransport)
	}
	return *parsed.Summary, nil
}
