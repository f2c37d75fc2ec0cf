// Multi-file cache with include resolution and optional overlay merging (component H)

package translate

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
)

// Cache memoizes parsed Files by logical name (the path as written in an include or a top-level
// Load call, with a leading "Metadata/" stripped per spec.md §4.H). It resolves includes for
// every file it parses, and can overlay a second directory's files on top of the base set.
type Cache struct {
	baseDir    string
	overlayDir string //empty if no overlay configured

	mu      sync.RWMutex
	entries map[string]*File
}

// NewCache constructs a Cache rooted at baseDir. overlayDir may be empty.
func NewCache(baseDir, overlayDir string) *Cache {
	return &Cache{baseDir: baseDir, overlayDir: overlayDir, entries: make(map[string]*File)}
}

// normalizeName strips an optional leading "Metadata/" prefix, matching the convention seen in
// the reference data files where includes are written relative to that directory.
func normalizeName(name string) string {
	const prefix = "Metadata/"
	if strings.HasPrefix(name, prefix) {
		return name[len(prefix):]
	}
	return name
}

// Get returns the parsed (and, where applicable, overlay-merged) File for name, parsing and
// caching it on first access. Concurrent callers sharing a Cache may safely call Get at once.
func (c *Cache) Get(name string) (*File, error) {
	key := normalizeName(name)

	c.mu.RLock()
	if f, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	//Load without holding the lock: parsing resolves includes through Get on this same Cache.
	f, err := c.load(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	//Re-check: another goroutine may have stored this entry while we were loading; keep the first.
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	c.entries[key] = f
	return f, nil
}

func (c *Cache) load(key string) (*File, error) {
	data, err := readIncludeFile(c.baseDir, key)
	if err != nil {
		return nil, err
	}
	p := newParser(c, c.baseDir, key)
	f, err := p.parse(data)
	if err != nil {
		return nil, err
	}

	if c.overlayDir != "" {
		overlayData, err := readIncludeFile(c.overlayDir, key)
		if err == nil {
			op := newParser(c, c.overlayDir, key)
			overlay, err := op.parse(overlayData)
			if err != nil {
				f.Diagnostics = append(f.Diagnostics, newDiag(DK_ParseError, key, 0,
					"overlay file failed to parse and was skipped: %s", err))
			} else {
				f.merge(overlay)
			}
		}
	}

	return f, nil
}

// Invalidate drops the cached entry for name, if any, so the next Get reparses from disk. Used
// by the directory-watch component when a file changes on disk.
func (c *Cache) Invalidate(name string) {
	key := normalizeName(name)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// readIncludeFile reads logicalName from dir, trying the name as given and then with a ".txt"
// extension appended, since includes are commonly written without one.
func readIncludeFile(dir, logicalName string) ([]byte, error) {
	p := path.Join(dir, logicalName)
	if data, err := os.ReadFile(p); err == nil {
		return data, nil
	}
	if !strings.HasSuffix(p, ".txt") {
		if data, err := os.ReadFile(p + ".txt"); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("could not read %q under %q", logicalName, dir)
}
