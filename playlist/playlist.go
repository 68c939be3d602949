// Package playlist defines playlist entries and the extended-M3U serializer.
package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/tvscout-cli/tvscout/filesystem"
)

// Header is the leading line of every extended-M3U file.
const Header = "#EXTM3U"

// Entry is a validated, deduplicated stream locator attributed to a channel.
type Entry struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// Sort orders entries deterministically: ascending by channel name, ties broken
// by URL. Discovery is concurrent, so emission order must never depend on it.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.Channel != b.Channel {
			return strings.Compare(a.Channel, b.Channel)
		}
		return strings.Compare(a.URL, b.URL)
	})
}

// Writer serializes entries into the extended-M3U format.
type Writer struct {
	// Group is the group-title attribute attached to every entry.
	Group string
}

// Render returns the complete file content for entries. Entries are sorted
// in place before rendering.
func (w Writer) Render(entries []Entry) string {
	Sort(entries)

	var b strings.Builder
	b.WriteString(Header + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "#EXTINF:-1 tvg-id=\"\" tvg-name=\"%s\" tvg-logo=\"\" group-title=\"%s\",%s\n", e.Channel, w.Group, e.Channel)
		b.WriteString(e.URL + "\n")
	}
	return b.String()
}

// Write serializes entries to path, fully replacing any existing file. The
// content is assembled in a temporary sibling and renamed into place so a
// failed run never leaves a truncated playlist behind. Returns the number of
// entries written.
func (w Writer) Write(entries []Entry, path string) (int, error) {
	fs := filesystem.API()

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, []byte(w.Render(entries)), 0644); err != nil {
		return 0, fmt.Errorf("write playlist: %w", err)
	}

	if err := fs.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("persist playlist: %w", err)
	}

	return len(entries), nil
}
