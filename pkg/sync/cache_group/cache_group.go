package cache_group

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Group is a write-once, never-evicting mapping from string keys to values.
// Concurrent loads of the same missing key are collapsed into one call; failed
// loads are not stored.
type Group[T any] struct {
	mutex  sync.RWMutex
	cache  map[string]T
	flight singleflight.Group
}

func (group *Group[T]) Get(key string) (T, bool) {
	group.mutex.RLock()
	defer group.mutex.RUnlock()

	value, ok := group.cache[key]
	return value, ok
}

func (group *Group[T]) Put(key string, value T) {
	group.mutex.Lock()
	defer group.mutex.Unlock()

	if group.cache == nil {
		group.cache = make(map[string]T)
	}
	group.cache[key] = value
}

func (group *Group[T]) Len() int {
	group.mutex.RLock()
	defer group.mutex.RUnlock()
	return len(group.cache)
}

// Do returns the stored value for key, or calls fn, stores its result when it
// succeeds, and returns it. The boolean reports whether the value came from the
// store.
func (group *Group[T]) Do(key string, fn func() (T, error)) (T, bool, error) {
	if value, ok := group.Get(key); ok {
		return value, true, nil
	}

	result, err, _ := group.flight.Do(key, func() (any, error) {
		if value, ok := group.Get(key); ok {
			return value, nil
		}

		value, err := fn()
		if err != nil {
			return value, err
		}
		group.Put(key, value)

		return value, nil
	})

	value, _ := result.(T)
	return value, false, err
}
