package crawl

import "time"

// Report summarizes a completed crawl run.
type Report struct {
	StartedAt  time.Time      `json:"started_at"`
	Elapsed    float64        `json:"elapsed_seconds"`
	Channels   []string       `json:"channels"`
	Pages      int            `json:"pages"`
	Discovered int            `json:"discovered"`
	Valid      int            `json:"valid"`
	PerChannel map[string]int `json:"per_channel"`
	OutputFile string         `json:"output_file,omitempty"`
}
