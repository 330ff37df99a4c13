package reach

// Registry is an insertion-ordered set. Interactables register themselves on
// Enable and deregister on Disable; interactors read it every tick. Iteration
// order is stable, which keeps candidate scoring deterministic.
//
// A Registry is not safe for concurrent use. Worlds that tick from several
// goroutines must serialize Register/Deregister against candidate search.
type Registry[T comparable] struct {
	items []T
	index map[T]int
}

// NewRegistry creates an empty registry.
func NewRegistry[T comparable]() *Registry[T] {
	return &Registry[T]{index: make(map[T]int)}
}

// Register adds item. Returns false if it was already present; the original
// position is kept.
func (r *Registry[T]) Register(item T) bool {
	if _, ok := r.index[item]; ok {
		return false
	}
	r.index[item] = len(r.items)
	r.items = append(r.items, item)
	return true
}

// Deregister removes item. Returns false if it was not present.
// Uses copy+zero so the backing array does not retain the removed entry.
func (r *Registry[T]) Deregister(item T) bool {
	i, ok := r.index[item]
	if !ok {
		return false
	}
	copy(r.items[i:], r.items[i+1:])
	var zero T
	r.items[len(r.items)-1] = zero
	r.items = r.items[:len(r.items)-1]
	delete(r.index, item)
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j]] = j
	}
	return true
}

// Contains reports whether item is registered.
func (r *Registry[T]) Contains(item T) bool {
	_, ok := r.index[item]
	return ok
}

// Len returns the number of registered items.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// List returns a fresh slice of the items for which keep returns true, in
// registration order. A nil keep returns every item.
func (r *Registry[T]) List(keep func(T) bool) []T {
	out := make([]T, 0, len(r.items))
	for _, it := range r.items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Each calls fn for every item in registration order until fn returns false.
// fn must not mutate the registry.
func (r *Registry[T]) Each(fn func(T) bool) {
	for _, it := range r.items {
		if !fn(it) {
			return
		}
	}
}
