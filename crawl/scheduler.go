package crawl

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/extract"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/log"
)

// FetchFunc retrieves the raw markup of one search result page.
type FetchFunc func(ctx context.Context, channel string, page int) (string, error)

// Task identifies one unit of discovery work.
type Task struct {
	Channel string
	Page    int
}

// Scheduler drives the discovery stage: it enumerates (channel, page) tasks and
// runs fetch+extract under bounded concurrency. Channels are crawled by an
// outer worker pool and each channel's pages by a smaller inner pool.
type Scheduler struct {
	Fetch          FetchFunc
	Pages          int
	ChannelWorkers int
	PageWorkers    int

	// PageDelay paces successive page fetches of the same channel so the
	// search endpoint does not rate limit us. The first page is never delayed.
	PageDelay time.Duration

	// StopOnEmpty terminates a channel's page loop once a page yields zero
	// candidates. Heuristic for search result exhaustion, not a protocol
	// guarantee.
	StopOnEmpty bool

	// FetchTimeout bounds a single page fetch.
	FetchTimeout time.Duration
}

// NewScheduler constructs a Scheduler from global configuration.
func NewScheduler(fetch FetchFunc) *Scheduler {
	return &Scheduler{
		Fetch:          fetch,
		Pages:          viper.GetInt(key.CrawlerPages),
		ChannelWorkers: viper.GetInt(key.CrawlerChannelWorkers),
		PageWorkers:    viper.GetInt(key.CrawlerPageWorkers),
		PageDelay:      viper.GetDuration(key.CrawlerPageDelay),
		StopOnEmpty:    viper.GetBool(key.CrawlerStopOnEmptyPage),
		FetchTimeout:   viper.GetDuration(key.SearchTimeout),
	}
}

// Run crawls every channel and returns the deduplicated candidates in
// discovery order. Individual fetch failures never abort the run; they count
// as empty pages.
func (s *Scheduler) Run(ctx context.Context, channels []string) []extract.Candidate {
	set := newCandidateSet()

	sem := make(chan struct{}, bound(s.ChannelWorkers))
	var wg sync.WaitGroup

	for _, channel := range channels {
		sem <- struct{}{}
		wg.Add(1)

		go func(channel string) {
			defer wg.Done()
			defer func() { <-sem }()
			s.crawlChannel(ctx, channel, set)
		}(channel)
	}

	wg.Wait()
	return set.snapshot()
}

// crawlChannel dispatches a channel's pages to the inner pool, honoring pacing
// and the early-stop policy. In-flight pages are allowed to finish when the
// stop triggers; only undispatched pages are skipped.
func (s *Scheduler) crawlChannel(ctx context.Context, channel string, set *candidateSet) {
	sem := make(chan struct{}, bound(s.PageWorkers))
	var wg sync.WaitGroup
	var exhausted atomic.Bool

	for page := 1; page <= s.Pages; page++ {
		if exhausted.Load() || ctx.Err() != nil {
			break
		}

		if page > 1 && s.PageDelay > 0 {
			select {
			case <-time.After(s.PageDelay):
			case <-ctx.Done():
				wg.Wait()
				return
			}
		}

		sem <- struct{}{}
		if exhausted.Load() {
			// The stop landed while we waited for a slot.
			<-sem
			break
		}
		wg.Add(1)

		go func(task Task) {
			defer wg.Done()
			defer func() { <-sem }()

			// Only a successful fetch that extracted nothing signals
			// exhaustion; transport failures are isolated to their page.
			if found, failed := s.runTask(ctx, task, set); !failed && found == 0 && s.StopOnEmpty {
				log.Debugf("channel %s exhausted at page %d", task.Channel, task.Page)
				exhausted.Store(true)
			}
		}(Task{Channel: channel, Page: page})
	}

	wg.Wait()
}

// runTask fetches one search page and feeds extracted candidates into set.
// Fetch failures are isolated to the task: logged, reported as failed and
// treated as zero candidates, never as an exhausted channel.
func (s *Scheduler) runTask(ctx context.Context, task Task, set *candidateSet) (found int, failed bool) {
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}

	markup, err := s.Fetch(ctx, task.Channel, task.Page)
	if err != nil {
		log.Warnf("fetch %s page %d: %v", task.Channel, task.Page, err)
		return 0, true
	}

	candidates := extract.Extract(markup, task.Channel)
	set.addAll(candidates)
	return len(candidates), false
}

// bound clamps a configured worker count to a usable pool size.
func bound(workers int) int {
	if workers < 1 {
		return 1
	}
	return workers
}
