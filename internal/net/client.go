// Package net is the HTTP transport of the nara backend. Requests go
// through a browser-fingerprinted TLS client so the speller serves them like
// a regular browser visit.
package net

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// DefaultBase is the nara speller origin.
const DefaultBase = "https://nara-speller.co.kr"

// Client posts forms to one origin, keeping cookies and TLS sessions alive.
type Client struct {
	base string
	http tls_client.HttpClient
}

// New creates a client for base ("" selects DefaultBase).
func New(base string, timeout time.Duration) (*Client, error) {
	if base == "" {
		base = DefaultBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(),
		tls_client.WithTimeoutSeconds(int(timeout/time.Second)),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	)
	if err != nil {
		return nil, fmt.Errorf("net: tls client: %w", err)
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}, nil
}

// PostForm submits form to path and returns the response body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, c.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header = fhttp.Header{
		"content-type":    {"application/x-www-form-urlencoded"},
		"user-agent":      {ua},
		"x-forwarded-for": {RandV4()},
		fhttp.HeaderOrderKey: {
			"content-type",
			"user-agent",
			"x-forwarded-for",
		},
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("net: post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("net: read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("net: post %s: status %d", path, resp.StatusCode)
	}
	return body, nil
}

const ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
