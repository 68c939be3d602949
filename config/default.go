// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tvscout-cli/tvscout/color"
	"github.com/tvscout-cli/tvscout/constant"
	"github.com/tvscout-cli/tvscout/key"
	"github.com/tvscout-cli/tvscout/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Tvscout + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SearchBaseURL, "https://tonkiang.us/", "Base URL of the keyword search endpoint")
	register(key.SearchTimeout, "15s", "Timeout for a single search page fetch")
	register(key.SearchSuggestions, true, "Show channel keyword suggestions from past crawls\nwhen completing the --channels flag")
	register(key.CrawlerChannels, []string{
		"CCTV1", "CCTV2", "CCTV3", "CCTV4", "CCTV5",
		"CCTV6", "CCTV7", "CCTV8", "CCTV9", "CCTV10",
		"CCTV11", "CCTV12", "CCTV13", "CCTV14", "CCTV15",
		"CCTV16", "CCTV17",
	}, "Default channel lineup to crawl when no --channels flag is given")
	register(key.CrawlerPages, 2, "Search result pages to fetch per channel")
	register(key.CrawlerChannelWorkers, 3, "Channels crawled in parallel")
	register(key.CrawlerPageWorkers, 2, "Pages of a single channel fetched in parallel")
	register(key.CrawlerPageDelay, "8s", "Delay between successive page fetches of the same channel.\nKeeps the search endpoint from rate limiting us.\nSkipped for a channel's first page")
	register(key.CrawlerStopOnEmptyPage, true, "Stop crawling a channel once a page yields no links.\nHeuristic for search result exhaustion")
	register(key.ProbeWorkers, 10, "Stream locators probed in parallel")
	register(key.ProbeTimeout, "5s", "Timeout for a single stream reachability probe")
	register(key.ProbeBodyBytes, 512, "Leading bytes of the stream body inspected\nwhen the content-type header is inconclusive")
	register(key.OutputDir, "output", "Directory the playlist file is written to")
	register(key.OutputFile, "channels.m3u", "Playlist file name")
	register(key.OutputGroup, "CCTV", "group-title attribute attached to every playlist entry")
	register(key.HistorySaveRuns, true, "Persist a record of every crawl run")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
