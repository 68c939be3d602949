// Package search implements the client for the keyword-based IPTV search endpoint.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/constant"
	"github.com/tvscout-cli/tvscout/internal/cache"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/network"
	"github.com/tvscout-cli/tvscout/token"
	"github.com/tvscout-cli/tvscout/util"
)

// Client fetches search result pages for channel keywords.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  token.Generator

	// useCache enables the short-lived page cache so repeated runs within its
	// TTL do not hammer the search endpoint.
	useCache bool
}

// NewClient constructs a Client against the configured endpoint using the
// shared network client and a fresh session token generator.
func NewClient() *Client {
	client := NewClientWith(viper.GetString(key.SearchBaseURL), network.Client, token.New())
	client.useCache = true
	return client
}

// NewClientWith constructs a Client with explicit collaborators.
func NewClientWith(baseURL string, httpClient *http.Client, tokens token.Generator) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		tokens:  tokens,
	}
}

// FetchPage retrieves the raw markup of one search result page for a channel keyword.
// Pages are 1-based; the endpoint expects the page parameter to be absent for the first page.
func (c *Client) FetchPage(ctx context.Context, channel string, page int) (string, error) {
	cacheKey := cache.GenerateKey(channel, page)

	if c.useCache {
		var cached string
		if cache.Read(cacheKey, &cached) {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("iptv", channel)
	q.Set("l", c.tokens())
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.8,en-US;q=0.5,en;q=0.3")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("search %s page %d: unexpected status %s", channel, page, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if c.useCache {
		_ = cache.Write(cacheKey, string(body))
	}

	return string(body), nil
}
