// Package network provides pre-configured, optimized HTTP clients for concurrent crawling and probing.
package network

import (
	"net/http"
	"time"
)

// Client is the singleton HTTP client shared across search page fetches.
// It is configured with increased concurrency limits and timeouts tolerant of a slow search endpoint.
var Client = &http.Client{
	Timeout:   15 * time.Second,
	Transport: newTransport(),
}

// ProbeClient is the HTTP client used for stream reachability probes.
// Probes are numerous and short-lived, so the timeout is deliberately tight.
var ProbeClient = &http.Client{
	Timeout:   5 * time.Second,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 10 * time.Second
	return t
}
