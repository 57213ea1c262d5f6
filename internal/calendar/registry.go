package calendar

import "sync"

// Registry hands out one RecordCache per user so the personal calendar and
// the admin view of other employees never share entries.
type Registry struct {
	loader Loader

	mu     sync.Mutex
	caches map[string]*RecordCache
}

func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader: loader,
		caches: make(map[string]*RecordCache),
	}
}

func (r *Registry) For(userID string) *RecordCache {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caches[userID]
	if !ok {
		c = NewRecordCache(userID, r.loader)
		r.caches[userID] = c
	}
	return c
}

// Invalidate drops monthKey from every user's cache.
func (r *Registry) Invalidate(monthKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.caches {
		c.Invalidate(monthKey)
	}
}
