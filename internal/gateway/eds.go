// Package gateway submits e-invoice XML documents to the VID EDS
// tax-authority gateway. The protocol is a multipart file upload with
// an API key header; any non-2xx response is reported verbatim to the
// caller.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the production EDS e-invoice endpoint.
const DefaultURL = "https://eds.vid.gov.lv/api/v2/einvoice"

const requestTimeout = 10 * time.Second

// Client talks to the EDS gateway.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithURL overrides the gateway endpoint, used in tests.
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a gateway client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		url:        DefaultURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit uploads one e-invoice XML document. It returns the gateway's
// response text on failure so the operator sees the exact error.
func (c *Client) Submit(ctx context.Context, xmlBytes []byte) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "invoice.xml")
	if err != nil {
		return err
	}
	if _, err := part.Write(xmlBytes); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("eds gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Info().Int("status", resp.StatusCode).Msg("e-invoice submitted to eds")
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	log.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("eds submission failed")
	return fmt.Errorf("eds gateway returned %d: %s", resp.StatusCode, string(respBody))
}
