package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dtnitsch/doc-summarizer/models"
	"github.com/dtnitsch/doc-summarizer/pkg/acquire"
)

// UploadFormField is the multipart field carrying the file.
const UploadFormField = "file"

type uploadResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Extract uploads file and returns the text the service extracted from it.
// A 2xx response without a usable text string yields
// models.ErrUnsupportedFormat; only network errors and non-2xx responses
// yield models.ErrTransport.
func (c *Client) Extract(ctx context.Context, file *acquire.File) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: no file selected", models.ErrPrecondition)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, UploadFormField, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+UploadPath, &body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", models.ErrTransport, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	// The request succeeded; anything without usable text is a content
	// failure, not a transport one.
	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Warn("undecodable upload response", "file", file.Name, "error", err, "body", truncate(string(respBody), 200))
		return "", fmt.Errorf("%w: %s: undecodable response: %w", models.ErrUnsupportedFormat, file.Name, err)
	}

	if parsed.Text == "" {
		if parsed.Error != "" {
			c.logger.Warn("extraction rejected by service", "file", file.Name, "service_error", parsed.Error)
		}
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, file.Name)
	}
	return parsed.Text, nil
}
