// Package cache provides localized filesystem-based caching for transient search result pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tvscout-cli/tvscout/filesystem"
	"github.com/tvscout-cli/tvscout/where"
)

// TTL bounds how long a fetched search page is reused. Search results churn
// quickly, so the window is short.
const TTL = 30 * time.Minute

// getDir resolves the page cache directory, kept apart from the long-lived
// caches sharing the cache root.
func getDir() string {
	dir := filepath.Join(where.Cache(), "pages")
	_ = filesystem.API().MkdirAll(dir, os.ModePerm)
	return dir
}

// GenerateKey generates a deterministic SHA-256 hash from a channel keyword and
// page number pair for use as a cache identifier.
func GenerateKey(channel string, page int) string {
	sanitized := strings.ToLower(strings.ReplaceAll(channel, " ", "")) + strconv.Itoa(page)
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(key string, target interface{}) bool {
	fs := filesystem.API()
	path := filepath.Join(getDir(), key)

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	raw, err := fs.ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, target) == nil
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(key string, data interface{}) error {
	fs := filesystem.API()
	path := filepath.Join(getDir(), key)
	tmpPath := path + ".tmp"

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := fs.WriteFile(tmpPath, raw, 0644); err != nil {
		return err
	}

	return fs.Rename(tmpPath, path)
}

// CollectGarbage prunes expired page cache entries from the filesystem.
func CollectGarbage() {
	fs := filesystem.API()
	dir := getDir()

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if time.Since(entry.ModTime()) > TTL {
			_ = fs.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
