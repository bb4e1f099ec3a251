// Package github is a small REST client for the handful of GitHub endpoints a
// release needs: releases, release assets, repository contents and issues.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aottr/releasor/internal/ui"
	"github.com/aottr/releasor/internal/utils"
)

const (
	DefaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	userAgent      = "releasor/1.0"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNoToken  = errors.New("GITHUB_TOKEN environment variable not set")
)

// TokenFromEnv prefers RELEASOR_GITHUB_TOKEN over GITHUB_TOKEN.
func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("RELEASOR_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// APIError is a non-2xx response other than 404.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API request failed: %s %s: %d", e.Method, e.URL, e.StatusCode)
	if e.Message != "" {
		msg += " " + e.Message
	}
	return msg
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Out     *ui.Printer
	// Progress, when set, receives an upload progress bar.
	Progress io.Writer
}

func NewClient(token string, out *ui.Printer) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 5 * time.Minute},
		Out:     out,
	}
}

func (c *Client) url(format string, a ...any) string {
	base := strings.TrimRight(utils.WithDefault(c.BaseURL, DefaultBaseURL), "/")
	return base + fmt.Sprintf(format, a...)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	if c.Token == "" {
		return nil, ErrNoToken
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", req.Method, req.URL, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, req.Method, req.URL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// Request sends a JSON API call. An empty response body yields a nil message.
func (c *Client) Request(ctx context.Context, method, url string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Out.Infof(utils.LabelFrom(ctx, "github"), "%s %s", method, url)
	return c.send(req)
}

// call sends a request and decodes the response into out, if any.
func (c *Client) call(ctx context.Context, method, url string, body, out any) error {
	raw, err := c.Request(ctx, method, url, body)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}
