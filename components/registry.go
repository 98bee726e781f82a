package components

import "errors"

// ErrCapacityExhausted is returned by Registry.Alloc when every handle is live.
// Silently aliasing a live handle would corrupt simulation state, so this is
// the one resource-limit condition the core reports as a hard failure.
var ErrCapacityExhausted = errors.New("entity registry: capacity exhausted")

// Registry allocates and recycles entity handles from a fixed pool.
// It has no behavior beyond handle lifecycle: liveness is tracked so a
// stale Free or Alive check is harmless, but component values are NOT
// cleared when a handle is recycled.
type Registry struct {
	capacity int
	free     []Entity
	alive    []bool
	live     int
}

// NewRegistry creates a registry for handles in [0, capacity).
func NewRegistry(capacity int) *Registry {
	r := &Registry{
		capacity: capacity,
		free:     make([]Entity, 0, capacity),
		alive:    make([]bool, capacity),
	}
	// Fill the free list so low handles come out first.
	for i := capacity - 1; i >= 0; i-- {
		r.free = append(r.free, Entity(i))
	}
	return r
}

// Alloc returns a fresh or recycled handle, or ErrCapacityExhausted.
func (r *Registry) Alloc() (Entity, error) {
	if len(r.free) == 0 {
		return None, ErrCapacityExhausted
	}
	e := r.free[len(r.free)-1]
	r.free = r.free[:len(r.free)-1]
	r.alive[e] = true
	r.live++
	return e, nil
}

// Free recycles a handle. Freeing an invalid or already-free handle is a no-op.
func (r *Registry) Free(e Entity) {
	if e < 0 || int(e) >= r.capacity || !r.alive[e] {
		return
	}
	r.alive[e] = false
	r.live--
	r.free = append(r.free, e)
}

// Alive reports whether the handle is currently allocated.
func (r *Registry) Alive(e Entity) bool {
	return e >= 0 && int(e) < r.capacity && r.alive[e]
}

// Live returns the number of allocated handles.
func (r *Registry) Live() int {
	return r.live
}

// Capacity returns the fixed handle pool size.
func (r *Registry) Capacity() int {
	return r.capacity
}
