package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/treeq/goast"
)

// sourceInput represents the two ways Go source can be provided to a tool.
// Exactly one of File or Content must be set.
type sourceInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Go source file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline Go source text"`
}

// cacheEntry holds a parsed file with LRU ordering and TTL expiry.
type cacheEntry struct {
	file      *goast.File
	insertAt  time.Time
	expiresAt time.Time
}

// sourceCacheStore provides a session-scoped cache for parsed sources.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash, both together with the comment setting.
type sourceCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var sourceCache = &sourceCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached file or nil. Expired entries are lazily removed.
func (c *sourceCacheStore) get(key string) *goast.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.file
	}
	return nil
}

// putWithTTL stores a file, evicting the oldest entry if at capacity.
func (c *sourceCacheStore) putWithTTL(key string, file *goast.File, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{file: file, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *sourceCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *sourceCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *sourceCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *sourceCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input. It returns "" when
// the input cannot be cached.
func makeCacheKey(s sourceInput, comments bool) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d:%t", absPath, info.ModTime().UnixNano(), comments)
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s:%t", hex.EncodeToString(h[:]), comments)
	default:
		return ""
	}
}

// resolve parses the source from whichever input was provided, using the
// cache when enabled.
func (s sourceInput) resolve(comments bool) (*goast.File, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set TREEQ_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s, comments)
	}
	if key != "" {
		if cached := sourceCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []goast.Option{goast.WithComments(comments)}
	if s.File != "" {
		opts = append(opts, goast.WithFilePath(s.File))
	} else {
		opts = append(opts, goast.WithBytes([]byte(s.Content)), goast.WithSourceName("input.go"))
	}
	file, err := goast.Load(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		sourceCache.putWithTTL(key, file, cfg.CacheTTL)
	}
	return file, nil
}
