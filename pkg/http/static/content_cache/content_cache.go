package content_cache

import (
	"github.com/Motmedel/static_server_go/pkg/sync/cache_group"
)

// Cache memoizes file bytes by resolved path for the lifetime of the process.
// Entries are never evicted, updated or expired. A disabled cache never stores
// anything.
type Cache struct {
	Enabled bool
	group   cache_group.Group[[]byte]
}

func New(enabled bool) *Cache {
	return &Cache{Enabled: enabled}
}

func (cache *Cache) Get(path string) ([]byte, bool) {
	if cache == nil || !cache.Enabled {
		return nil, false
	}
	return cache.group.Get(path)
}

func (cache *Cache) Put(path string, data []byte) {
	if cache == nil || !cache.Enabled {
		return
	}
	cache.group.Put(path, data)
}

func (cache *Cache) Len() int {
	if cache == nil {
		return 0
	}
	return cache.group.Len()
}

// Load returns the cached bytes for path, or reads them with read and stores
// them on success. When the cache is disabled, read is always called.
func (cache *Cache) Load(path string, read func() ([]byte, error)) ([]byte, bool, error) {
	if cache == nil || !cache.Enabled {
		data, err := read()
		return data, false, err
	}
	return cache.group.Do(path, read)
}
