package cache

import (
	"sort"
	"sync"
)

// Index keeps the set of known recipe names in memory.
type Index struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewIndex creates an index holding names.
func NewIndex(names []string) *Index {
	idx := &Index{}
	idx.Replace(names)
	return idx
}

// Names returns a sorted copy of the indexed names.
func (i *Index) Names() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, 0, len(i.names))
	for n := range i.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (i *Index) Contains(name string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.names[name]
	return ok
}

// Add inserts name and reports whether it was new.
func (i *Index) Add(name string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.names[name]; ok {
		return false
	}
	i.names[name] = struct{}{}
	return true
}

// Remove deletes name and reports whether it was present.
func (i *Index) Remove(name string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.names[name]; !ok {
		return false
	}
	delete(i.names, name)
	return true
}

// Replace swaps the whole name set.
func (i *Index) Replace(names []string) {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.names = set
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.names)
}
