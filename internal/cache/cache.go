// Package cache stores evidence oracle answers on disk so repeated
// evaluations of the same candidates skip the oracle round trip.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"github.com/klauspost/compress/zstd"
)

const entryExt = ".json.zst"

// EncodeAll and DecodeAll are safe for concurrent use.
var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Cache provides caching for evidence results
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a new cache instance with the specified directory
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key generates a cache key for an evidence query.
// The key is based on:
// - candidate identity (name, website, GitHub URL)
// - query kind, criterion, topic and focus
// - hints
// - model ID
func Key(q *oracle.EvidenceQuery, model string) (string, error) {
	h := sha256.New()

	for _, s := range []string{
		q.Candidate.Name,
		q.Candidate.Website,
		q.Candidate.GitHubURL,
		string(q.Kind),
		string(q.Criterion),
		q.Topic,
		q.Focus,
		model,
	} {
		if err := writeString(h, s); err != nil {
			return "", err
		}
	}

	// map keys are marshaled in sorted order
	hintsJSON, err := json.Marshal(q.Hints)
	if err != nil {
		return "", fmt.Errorf("marshaling hints: %w", err)
	}
	if _, err := h.Write(hintsJSON); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get retrieves a cached evidence result if it exists
func (c *Cache) Get(key string) (*oracle.EvidenceResult, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	compressed, err := os.ReadFile(c.cachePath(key))
	if err != nil {
		return nil, false
	}

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false
	}

	var res oracle.EvidenceResult
	if err := json.Unmarshal(data, &res); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}
	return &res, true
}

// Put stores an evidence result in the cache
func (c *Cache) Put(key string, res *oracle.EvidenceResult) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshaling evidence: %w", err)
	}

	if err := os.WriteFile(c.cachePath(key), encoder.EncodeAll(data, nil), 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Clear removes all cached results. It refuses to touch a directory holding
// anything other than cache entries.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
		}
		if !strings.HasSuffix(entry.Name(), entryExt) {
			return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

func writeString(w io.Writer, s string) error {
	// null byte delimiter prevents collisions between adjacent fields
	_, err := w.Write([]byte(s + "\x00"))
	return err
}
