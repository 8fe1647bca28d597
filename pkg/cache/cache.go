// Package cache keeps a local snapshot of the last loaded entries so the
// CLI can show the previous week when the API is unreachable. One JSON
// value per entry, keyed by entry ID.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/punch/pkg/entry"
)

// Cache is a diskv-backed entry snapshot.
type Cache struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates or opens a cache rooted at path. A leading ~ expands to the
// user's home directory.
func Open(path string) (*Cache, error) {
	basePath, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("cache: expanding path: %w", err)
	}
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory backing the cache.
func (c *Cache) BasePath() string { return c.basePath }

// Put stores one entry, overwriting any previous value for its ID.
func (c *Cache) Put(e *entry.Entry) error {
	if e == nil || e.ID == "" {
		return nil
	}
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: encoding entry %s: %w", e.ID, err)
	}
	if err := c.d.Write(e.ID, val); err != nil {
		return fmt.Errorf("cache: writing entry %s: %w", e.ID, err)
	}
	return nil
}

// Delete removes the entry for id. Absent IDs are a no-op.
func (c *Cache) Delete(_ context.Context, id string) error {
	if !c.d.Has(id) {
		return nil
	}
	if err := c.d.Erase(id); err != nil {
		return fmt.Errorf("cache: erasing entry %s: %w", id, err)
	}
	return nil
}

// List returns every cached entry. Values that fail to decode are skipped
// with a note on stderr, matching how the store treats corrupt keys.
func (c *Cache) List(ctx context.Context) ([]*entry.Entry, error) {
	var out []*entry.Entry
	for key := range c.d.Keys(ctx.Done()) {
		val, err := c.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache: %s: %s\n", key, err)
			continue
		}
		e := &entry.Entry{}
		if err := json.Unmarshal(val, e); err != nil {
			fmt.Fprintf(os.Stderr, "cache: %s: %s\n", key, err)
			continue
		}
		if e.ID == "" {
			e.ID = key
		}
		out = append(out, e)
	}
	return out, nil
}

// ReplaceAll swaps the snapshot for a fresh load.
func (c *Cache) ReplaceAll(entries []*entry.Entry) error {
	if err := c.d.EraseAll(); err != nil {
		return fmt.Errorf("cache: clearing snapshot: %w", err)
	}
	for _, e := range entries {
		if err := c.Put(e); err != nil {
			return err
		}
	}
	return nil
}
