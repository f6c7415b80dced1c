package geocode

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// Coords is a nullable coordinate pair. It serializes as a two-element
// JSON array [lat, lon] to stay compatible with existing cache files;
// unresolved addresses are stored as [null, null].
type Coords struct {
	Lat *float64
	Lon *float64
}

// Resolved reports whether both coordinates are present.
func (c Coords) Resolved() bool {
	return c.Lat != nil && c.Lon != nil
}

// MarshalJSON encodes the pair as [lat, lon].
func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*float64{c.Lat, c.Lon})
}

// UnmarshalJSON decodes [lat, lon], tolerating null for the whole pair.
func (c *Coords) UnmarshalJSON(data []byte) error {
	var pair [2]*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	c.Lat, c.Lon = pair[0], pair[1]
	return nil
}

// FileCache is a flat JSON object mapping raw address strings to coordinate
// pairs. It is append-only during a run and rewritten wholesale on each save.
// No TTL, no eviction. Not safe for concurrent use; the pipeline is
// single-threaded.
type FileCache struct {
	path    string
	entries map[string]Coords
}

// LoadCache reads the cache file at path, returning an empty cache when the
// file does not exist yet.
func LoadCache(path string) (*FileCache, error) {
	fc := &FileCache{path: path, entries: make(map[string]Coords)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return nil, eris.Wrapf(err, "geocode: read cache %s", path)
	}

	if err := json.Unmarshal(data, &fc.entries); err != nil {
		return nil, eris.Wrapf(err, "geocode: parse cache %s", path)
	}
	return fc, nil
}

// Get returns the cached pair for a raw address, if present.
func (fc *FileCache) Get(address string) (Coords, bool) {
	c, ok := fc.entries[address]
	return c, ok
}

// Put records a lookup result and persists the whole cache to disk.
func (fc *FileCache) Put(address string, c Coords) error {
	fc.entries[address] = c
	return fc.Save()
}

// Save rewrites the cache file.
func (fc *FileCache) Save() error {
	data, err := json.Marshal(fc.entries)
	if err != nil {
		return eris.Wrap(err, "geocode: marshal cache")
	}
	if err := os.WriteFile(fc.path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geocode: write cache %s", fc.path)
	}
	return nil
}

// Len returns the number of cached addresses.
func (fc *FileCache) Len() int { return len(fc.entries) }
