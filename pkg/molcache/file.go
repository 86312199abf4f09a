package molcache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FormatVersion is the schema version written by Save. Load refuses any
// other version so an old or foreign file fails with a clear diagnosis
// instead of a silently half-understood cache.
const FormatVersion = 1

// cacheFile is the persisted shape: a version tag and the entries sorted
// by key. Sorting makes saves deterministic, so a load/save cycle of an
// unchanged cache rewrites the identical bytes.
type cacheFile struct {
	Version int          `json:"version"`
	Cache   []cacheEntry `json:"cache"`
}

type cacheEntry struct {
	Namespace  Namespace `json:"namespace"`
	Identifier string    `json:"identifier"`
	Properties *Record   `json:"properties"`
}

// FormatError reports persisted data that cannot be decoded: malformed
// JSON, an unsupported version, or a broken entry. Entry is the zero-based
// index of the offending entry, or -1 when the failure is not tied to one.
type FormatError struct {
	Entry int
	Err   error
}

func (e *FormatError) Error() string {
	if e.Entry >= 0 {
		return fmt.Sprintf("cache entry %d: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("cache format: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Encode writes the cache to w in the versioned JSON format. Equal cache
// states encode to identical bytes.
func (c *Cache) Encode(w io.Writer) error {
	file := cacheFile{
		Version: FormatVersion,
		Cache:   make([]cacheEntry, 0, len(c.entries)),
	}
	for _, key := range c.Keys() {
		file.Cache = append(file.Cache, cacheEntry{
			Namespace:  key.Namespace,
			Identifier: key.Identifier,
			Properties: c.entries[key],
		})
	}
	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Save writes the cache to path, creating parent directories as needed and
// replacing any existing file.
func (c *Cache) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Decode reads one persisted cache from r. It either returns a complete
// cache or, on the first undecodable byte, a *FormatError and no cache at
// all; a bad file never yields partial state. Unknown JSON fields are
// ignored so files written by newer builds with extra properties still
// load. Keys are taken exactly as persisted, without re-normalization.
func Decode(r io.Reader) (*Cache, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var file struct {
		Version int               `json:"version"`
		Cache   []json.RawMessage `json:"cache"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &FormatError{Entry: -1, Err: err}
	}
	if file.Version != FormatVersion {
		return nil, &FormatError{
			Entry: -1,
			Err:   fmt.Errorf("unsupported format version %d, want %d", file.Version, FormatVersion),
		}
	}

	c := New()
	for i, raw := range file.Cache {
		var ent struct {
			Namespace  *Namespace `json:"namespace"`
			Identifier *string    `json:"identifier"`
			Properties *Record    `json:"properties"`
		}
		if err := json.Unmarshal(raw, &ent); err != nil {
			return nil, &FormatError{Entry: i, Err: err}
		}
		if ent.Namespace == nil {
			return nil, &FormatError{Entry: i, Err: errors.New("missing namespace")}
		}
		if ent.Identifier == nil {
			return nil, &FormatError{Entry: i, Err: errors.New("missing identifier")}
		}
		rec := ent.Properties
		if rec == nil {
			rec = &Record{}
		}
		c.entries[Key{Namespace: *ent.Namespace, Identifier: *ent.Identifier}] = rec
	}
	return c, nil
}

// Load reads the cache file at path. Missing or unreadable files surface
// as wrapped I/O errors (errors.Is with fs.ErrNotExist identifies the
// missing case); undecodable contents surface as a *FormatError. Treating
// a missing file as an empty cache is a policy decision left to callers.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cache file %s: %w", path, err)
	}
	return c, nil
}
