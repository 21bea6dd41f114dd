// Package httpjson posts JSON bodies to the advisory backend and decodes
// JSON replies.
package httpjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "heartrisk/internal/platform/errors"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client rooted at baseURL. A zero timeout means requests
// run until the server answers or ctx is cancelled.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Post sends in as JSON to path and decodes the 2xx reply into out.
// Transport errors wrap ErrTransport; non-2xx statuses and undecodable
// bodies wrap ErrBadResponse.
func (c *Client) Post(ctx context.Context, path, requestID string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %v", apperrors.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var body errorBody
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			return fmt.Errorf("%w: %s returned status %d: %s", apperrors.ErrBadResponse, path, resp.StatusCode, body.Error)
		}
		return fmt.Errorf("%w: %s returned status %d", apperrors.ErrBadResponse, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrBadResponse, path, err)
	}
	return nil
}
