package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/glouglou/cashup-backend/internal/domain"
)

const userAgent = "cashup-backend/1.0"

// maxErrorBody caps how much of a failed response is kept in the error
const maxErrorBody = 512

// Client posts cash-up records to a spreadsheet web app endpoint
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

// NewClient creates a Client. A non-positive timeout uses 10 seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		Endpoint: strings.TrimSpace(endpoint),
		HTTP:     &http.Client{Timeout: timeout},
	}
}

// Send posts the submission as JSON.
// Any non-2xx response is returned as an error wrapping domain.ErrSubmissionRejected.
func (c *Client) Send(ctx context.Context, submission domain.Submission) error {
	if c == nil || c.Endpoint == "" {
		return domain.ErrSubmissionDisabled
	}

	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Idempotency-Key", submission.ID.String())

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", domain.ErrSubmissionRejected, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
