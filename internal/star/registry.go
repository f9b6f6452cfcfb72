package star

// Registry assigns surrogate identifiers to natural keys in first-seen
// order. One instance serves one dimension; identifier spaces are
// independent between instances.
type Registry[K comparable] struct {
	ids  map[K]int
	next int
}

// NewRegistry creates an empty registry
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{ids: make(map[K]int)}
}

// ResolveOrRegister returns the identifier for key. An unseen key is
// assigned the next sequential identifier, starting at 1; a known key
// returns its existing identifier unchanged. created reports whether
// the key was new.
func (r *Registry[K]) ResolveOrRegister(key K) (id int, created bool) {
	if id, ok := r.ids[key]; ok {
		return id, false
	}
	r.next++
	r.ids[key] = r.next
	return r.next, true
}

// Resolve returns the identifier for a known key
func (r *Registry[K]) Resolve(key K) (int, bool) {
	id, ok := r.ids[key]
	return id, ok
}

// Len returns the number of registered keys
func (r *Registry[K]) Len() int {
	return len(r.ids)
}
