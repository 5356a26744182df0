// Package eagle provides the client for the Eagle app's local HTTP API and the
// envelope every operation returns.
package eagle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"eagle-mcp/internal/logger"
)

// DefaultBaseURL is where Eagle listens when EAGLE_API_BASE_URL is not set.
const DefaultBaseURL = "http://localhost:41595"

const previewLimit = 100

// Client sends requests to Eagle. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	log     *slog.Logger
}

// New returns a client for baseURL. If httpClient is nil, a client that opens a
// fresh connection per request and sets no timeout is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
			},
		}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
		log:     logger.ForComponent("eagle"),
	}
}

// Request describes one call to Eagle. Params go into the query string for GET
// and into the JSON body for POST.
type Request struct {
	Method string
	Path   string
	Params *Params
	// Binary skips JSON parsing and returns the body as-is.
	Binary bool
}

// Response is the outcome of Do. Content and ContentType are only set for a
// successful binary request.
type Response struct {
	Envelope    Envelope
	Content     []byte
	ContentType string
}

// BinaryInfo is the success payload describing a binary response.
type BinaryInfo struct {
	ContentType string `json:"content_type"`
	DataSize    int    `json:"data_size"`
	Note        string `json:"note"`
}

// Get issues a GET with params as query values.
func (c *Client) Get(ctx context.Context, path string, params *Params) Envelope {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Params: params}).Envelope
}

// Post issues a POST with params as the JSON body.
func (c *Client) Post(ctx context.Context, path string, params *Params) Envelope {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Params: params}).Envelope
}

// Do performs exactly one HTTP request and normalizes the outcome. Failures are
// reported through the envelope, never as a Go error.
func (c *Client) Do(ctx context.Context, r Request) Response {
	if !strings.HasPrefix(r.Path, "/") {
		return Response{Envelope: Failure("invalid endpoint path %q: must start with /", r.Path)}
	}
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return Response{Envelope: Failure("%v", err)}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.log.Error("request error occurred", "method", r.Method, "path", r.Path, "err", err)
		return Response{Envelope: Failure("An error occurred: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("http error occurred", "status", resp.StatusCode, "url", req.URL.String())
		return Response{Envelope: Failure("HTTP error occurred: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("reading response body", "path", r.Path, "err", err)
		return Response{Envelope: Failure("An error occurred: %v", err)}
	}

	if r.Binary {
		ct := resp.Header.Get("Content-Type")
		return Response{
			Envelope: Success(BinaryInfo{
				ContentType: ct,
				DataSize:    len(body),
				Note:        "Binary data available but not displayed in text format",
			}),
			Content:     body,
			ContentType: ct,
		}
	}

	if !gjson.ValidBytes(body) {
		c.log.Warn("invalid json response", "path", r.Path, "size", len(body))
		return Response{Envelope: Failure("Invalid JSON response: %s", preview(body))}
	}
	return Response{Envelope: normalize(body)}
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	url := c.BaseURL + r.Path
	switch r.Method {
	case http.MethodGet:
		if r.Params.Len() > 0 {
			url += "?" + r.Params.Query().Encode()
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	case http.MethodPost:
		body := []byte("{}")
		if r.Params != nil {
			b, err := json.Marshal(r.Params)
			if err != nil {
				return nil, fmt.Errorf("encoding request body: %w", err)
			}
			body = b
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	default:
		return nil, fmt.Errorf("Unsupported HTTP method: %s", r.Method)
	}
}

// preview returns at most previewLimit characters of body.
func preview(body []byte) string {
	if utf8.RuneCount(body) <= previewLimit {
		return string(body)
	}
	var b strings.Builder
	n := 0
	for len(body) > 0 && n < previewLimit {
		r, size := utf8.DecodeRune(body)
		b.WriteRune(r)
		body = body[size:]
		n++
	}
	return b.String()
}
