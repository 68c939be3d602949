// Package probe validates stream locator reachability and content type.
//
// Probes are fail-closed: any transport error, unexpected status code or
// content mismatch classifies the locator as invalid. Nothing is retried.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/constant"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/network"
	"github.com/tvscout-cli/tvscout/util"
)

// MagicHeader is the leading token of an HLS playlist body.
const MagicHeader = "#EXTM3U"

// Prober performs reachability probes, memoized per URL for the lifetime of the instance.
type Prober struct {
	http      *http.Client
	timeout   time.Duration
	bodyBytes int

	mu   sync.Mutex
	seen map[string]bool
}

// New constructs a Prober from global configuration using the shared probe client.
func New() *Prober {
	return NewWith(
		network.ProbeClient,
		viper.GetDuration(key.ProbeTimeout),
		viper.GetInt(key.ProbeBodyBytes),
	)
}

// NewWith constructs a Prober with explicit collaborators.
func NewWith(client *http.Client, timeout time.Duration, bodyBytes int) *Prober {
	if bodyBytes <= 0 {
		bodyBytes = 512
	}
	return &Prober{
		http:      client,
		timeout:   timeout,
		bodyBytes: bodyBytes,
		seen:      make(map[string]bool),
	}
}

// Probe reports whether url points at a live stream playlist. The verdict is
// memoized: a url probed once is never probed again by this Prober. The error
// return carries the failure reason for logging; a verdict of false with a nil
// error means the locator was reachable but is not a playlist.
func (p *Prober) Probe(ctx context.Context, url string) (bool, error) {
	p.mu.Lock()
	if valid, ok := p.seen[url]; ok {
		p.mu.Unlock()
		return valid, nil
	}
	p.mu.Unlock()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	valid, err := p.probe(ctx, url)

	p.mu.Lock()
	p.seen[url] = valid
	p.mu.Unlock()

	return valid, err
}

// probe attempts a header-only check first and falls back to a ranged content
// check when the declared content type is inconclusive. A full body download is
// never required.
func (p *Prober) probe(ctx context.Context, url string) (bool, error) {
	if ok, err := p.headProbe(ctx, url); err == nil && ok {
		return true, nil
	}
	return p.rangedProbe(ctx, url)
}

func (p *Prober) headProbe(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := p.http.Do(req)
	if err != nil {
		return false, err
	}
	util.Ignore(resp.Body.Close)

	return resp.StatusCode == http.StatusOK && isPlaylistType(resp.Header.Get("Content-Type")), nil
}

func (p *Prober) rangedProbe(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", p.bodyBytes-1))

	resp, err := p.http.Do(req)
	if err != nil {
		return false, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return false, fmt.Errorf("probe %s: unexpected status %s", url, resp.Status)
	}

	if isPlaylistType(resp.Header.Get("Content-Type")) {
		return true, nil
	}

	head := make([]byte, p.bodyBytes)
	n, _ := io.ReadFull(resp.Body, head)

	return strings.HasPrefix(string(head[:n]), MagicHeader), nil
}

// isPlaylistType reports whether a content-type header declares an HLS playlist.
func isPlaylistType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "mpegurl")
}
