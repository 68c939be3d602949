// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Search Endpoint - these keys configure the upstream keyword search service.
const (
	SearchBaseURL     = "search.base_url"
	SearchTimeout     = "search.timeout"
	SearchSuggestions = "search.show_suggestions"
)

// Crawler Scheduling - these keys govern task enumeration, concurrency and pacing.
const (
	CrawlerChannels        = "crawler.channels"
	CrawlerPages           = "crawler.pages"
	CrawlerChannelWorkers  = "crawler.channel_workers"
	CrawlerPageWorkers     = "crawler.page_workers"
	CrawlerPageDelay       = "crawler.page_delay"
	CrawlerStopOnEmptyPage = "crawler.stop_on_empty_page"
)

// Stream Probing - these keys configure reachability validation of discovered locators.
const (
	ProbeWorkers   = "probe.workers"
	ProbeTimeout   = "probe.timeout"
	ProbeBodyBytes = "probe.body_bytes"
)

// Playlist Output - these keys define the emitted playlist file and its metadata.
const (
	OutputDir   = "output.dir"
	OutputFile  = "output.file"
	OutputGroup = "output.group"
)

// History Tracking - these keys configure the persistence of crawl run records.
const (
	HistorySaveRuns = "history.save_runs"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern general application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
