// Package dedup remembers which listings earlier runs already reported.
package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

type seenEntry struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// Retention is how long a listing stays remembered.
const Retention = 30 * 24 * time.Hour

// JobCache is a file-backed set of listing keys. Safe for concurrent use.
type JobCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
	log      *logging.Logger
	now      func() time.Time
}

// NewJobCache loads <cacheDir>/seen_jobs.json, dropping expired entries.
func NewJobCache(cacheDir string, log *logging.Logger) *JobCache {
	return newJobCache(cacheDir, log, time.Now)
}

func newJobCache(cacheDir string, log *logging.Logger, now func() time.Time) *JobCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn("⚠️ Failed to create cache directory", "error", err)
	}
	cache := &JobCache{
		filePath: filepath.Join(cacheDir, "seen_jobs.json"),
		seen:     make(map[string]int64),
		log:      log,
		now:      now,
	}
	cache.load()
	return cache
}

func (jc *JobCache) IsSeen(key string) bool {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	_, exists := jc.seen[key]
	return exists
}

// Unseen returns the listings not reported before, each key at most once,
// in their original order. Listings without a key are always returned.
func (jc *JobCache) Unseen(listings []models.JobListing) []models.JobListing {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	batch := mapset.NewThreadUnsafeSet[string]()
	fresh := make([]models.JobListing, 0, len(listings))
	for _, l := range listings {
		key := l.Key()
		if key == "" {
			fresh = append(fresh, l)
			continue
		}
		if _, exists := jc.seen[key]; exists || !batch.Add(key) {
			continue
		}
		fresh = append(fresh, l)
	}
	return fresh
}

// Add remembers listings and persists the cache when anything changed.
func (jc *JobCache) Add(listings []models.JobListing) {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	now := jc.now().UnixMilli()
	changed := false
	for _, l := range listings {
		key := l.Key()
		if key == "" {
			continue
		}
		if _, exists := jc.seen[key]; !exists {
			jc.seen[key] = now
			changed = true
		}
	}

	if changed {
		jc.save()
	}
}

func (jc *JobCache) Len() int {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	return len(jc.seen)
}

func (jc *JobCache) load() {
	data, err := os.ReadFile(jc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			jc.log.Warn("⚠️ Failed to read seen_jobs.json", "error", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		jc.log.Warn("⚠️ Failed to parse seen_jobs.json", "error", err)
		return
	}

	cutoff := jc.now().Add(-Retention).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			jc.seen[e.Key] = e.Timestamp
			loaded++
		}
	}
	jc.log.Info("📋 Loaded previously seen jobs", "loaded", loaded, "expired", len(entries)-loaded)
}

func (jc *JobCache) save() {
	entries := make([]seenEntry, 0, len(jc.seen))
	for key, ts := range jc.seen {
		entries = append(entries, seenEntry{Key: key, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		jc.log.Warn("⚠️ Failed to marshal seen jobs", "error", err)
		return
	}
	if err := os.WriteFile(jc.filePath, data, 0644); err != nil {
		jc.log.Warn("⚠️ Failed to write seen_jobs.json", "error", err)
		return
	}
	jc.log.Debug("💾 Saved seen jobs to cache", "entries", len(entries))
}
