package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Submission is a successful preview submission.
type Submission struct {
	// Location is where the caller navigates next (GET /preview).
	Location string
	// Cookies set by the server, needed to read the stored preview back.
	Cookies []*http.Cookie
}

// SubmitPreview posts doc to /preview. Any 2xx is success; anything else is a
// *SubmitError and the caller may submit again.
func (c *Client) SubmitPreview(ctx context.Context, doc *types.Document) (*Submission, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, &TransportError{Endpoint: PathPreview, Message: "failed to encode document", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathPreview, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Endpoint: PathPreview, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: PathPreview, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SubmitError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	c.logger.Debug().Int("status", resp.StatusCode).Msg("preview submitted")
	return &Submission{Location: c.baseURL + PathPreview, Cookies: resp.Cookies()}, nil
}

// FetchPreview reads back the stored document using the cookies of a submission.
func (c *Client) FetchPreview(ctx context.Context, sub *Submission) (*types.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sub.Location, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: PathPreview, Message: "failed to create request", Cause: err}
	}
	for _, ck := range sub.Cookies {
		req.AddCookie(ck)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: PathPreview, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SubmitError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var doc types.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &TransportError{Endpoint: PathPreview, Message: "failed to decode document", Cause: err}
	}
	return &doc, nil
}

// errorMessage pulls "error" out of a JSON error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
