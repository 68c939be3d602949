// Package crawl orchestrates the discover-validate-emit pipeline: task
// scheduling across (channel, page) pairs, candidate deduplication, bounded
// concurrent validation and deterministic playlist emission.
package crawl

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/extract"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/log"
	"github.com/tvscout-cli/tvscout/playlist"
	"github.com/tvscout-cli/tvscout/probe"
	"github.com/tvscout-cli/tvscout/search"
)

// ErrNoValidStreams is returned when a run ends with an empty validated set.
// It is the only run-level failure: every lower-level error is contained
// within its own task, page or probe.
var ErrNoValidStreams = errors.New("no valid streams discovered")

// Crawler wires the pipeline stages together.
type Crawler struct {
	Scheduler    *Scheduler
	Prober       *probe.Prober
	ProbeWorkers int
	Writer       playlist.Writer
	OutputPath   string
}

// New constructs a Crawler from global configuration.
func New() *Crawler {
	return &Crawler{
		Scheduler:    NewScheduler(search.NewClient().FetchPage),
		Prober:       probe.New(),
		ProbeWorkers: viper.GetInt(key.ProbeWorkers),
		Writer:       playlist.Writer{Group: viper.GetString(key.OutputGroup)},
		OutputPath:   filepath.Join(viper.GetString(key.OutputDir), viper.GetString(key.OutputFile)),
	}
}

// Run executes the full pipeline for the given channel lineup. It returns a
// report even on failure so callers can surface partial statistics. No output
// file is written when the validated set is empty.
func (c *Crawler) Run(ctx context.Context, channels []string) (*Report, error) {
	report := &Report{
		StartedAt:  time.Now(),
		Channels:   channels,
		Pages:      c.Scheduler.Pages,
		PerChannel: make(map[string]int),
	}

	log.Infof("crawling %d channels, %d pages each", len(channels), c.Scheduler.Pages)
	candidates := c.Scheduler.Run(ctx, channels)
	report.Discovered = len(candidates)
	report.Elapsed = time.Since(report.StartedAt).Seconds()

	if len(candidates) == 0 {
		return report, ErrNoValidStreams
	}

	log.Infof("probing %d unique locators", len(candidates))
	valid := c.validate(ctx, candidates)
	report.Valid = len(valid)
	report.Elapsed = time.Since(report.StartedAt).Seconds()

	if len(valid) == 0 {
		return report, ErrNoValidStreams
	}

	for _, cand := range valid {
		report.PerChannel[cand.Channel]++
	}

	entries := lo.Map(valid, func(cand extract.Candidate, _ int) playlist.Entry {
		return playlist.Entry{Channel: cand.Channel, URL: cand.URL}
	})

	if _, err := c.Writer.Write(entries, c.OutputPath); err != nil {
		return report, err
	}

	report.OutputFile = c.OutputPath
	report.Elapsed = time.Since(report.StartedAt).Seconds()
	return report, nil
}

// validate probes candidates under the validation worker pool, independent of
// the discovery pools, and keeps those that pass. Probe failures are isolated
// to their URL and logged; they never propagate.
func (c *Crawler) validate(ctx context.Context, candidates []extract.Candidate) []extract.Candidate {
	sem := make(chan struct{}, bound(c.ProbeWorkers))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		valid []extract.Candidate
	)

	for _, cand := range candidates {
		sem <- struct{}{}
		wg.Add(1)

		go func(cand extract.Candidate) {
			defer wg.Done()
			defer func() { <-sem }()

			ok, err := c.Prober.Probe(ctx, cand.URL)
			if err != nil {
				log.Debugf("probe %s: %v", cand.URL, err)
			}
			if !ok {
				return
			}

			mu.Lock()
			valid = append(valid, cand)
			mu.Unlock()
		}(cand)
	}

	wg.Wait()
	return valid
}
