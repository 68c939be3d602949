// Package history provides the implementation for tracking and persisting crawl run records.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/tvscout-cli/tvscout/crawl"
	"github.com/tvscout-cli/tvscout/filesystem"
	"github.com/tvscout-cli/tvscout/where"
	"golang.org/x/exp/slices"
)

// maxSavedRuns bounds the history registry size.
const maxSavedRuns = 100

// SavedRun is one completed crawl run preserved in the user's history.
type SavedRun struct {
	StartedAt  time.Time `json:"started_at"`
	Elapsed    float64   `json:"elapsed_seconds"`
	Channels   []string  `json:"channels"`
	Discovered int       `json:"discovered"`
	Valid      int       `json:"valid"`
	OutputFile string    `json:"output_file,omitempty"`
}

// cacher provides an abstracted, disk-backed registry for crawl run records.
var cacher = gache.New[[]*SavedRun](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the saved crawl runs, most recent first.
func Get() ([]*SavedRun, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []*SavedRun{}, nil
	}
	return cached, nil
}

// Save persists a finished run at the head of the history registry, trimming it
// to the configured retention size.
func Save(report *crawl.Report) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	run := &SavedRun{
		StartedAt:  report.StartedAt,
		Elapsed:    report.Elapsed,
		Channels:   report.Channels,
		Discovered: report.Discovered,
		Valid:      report.Valid,
		OutputFile: report.OutputFile,
	}

	saved = slices.Insert(saved, 0, run)

	if len(saved) > maxSavedRuns {
		saved = saved[:maxSavedRuns]
	}

	return cacher.Set(saved)
}
