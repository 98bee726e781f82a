// Package renderer holds the mesh-registry boundary the simulation syncs into.
// Actual rendering lives outside the core; anything exposing these mesh
// fields can be driven by render sync.
package renderer

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is the external renderable object render sync writes to.
type Mesh struct {
	Position r3.Vec
	Rotation quat.Number
	Scale    r3.Vec

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
}

// Registry maps integer indices to registered meshes, reusing freed indices.
// A reused index never aliases two simultaneously-live meshes: an index is
// only handed out again after Unregister.
type Registry struct {
	meshes []*Mesh
	free   []int32
}

// NewRegistry creates an empty mesh registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a mesh and returns its index, reusing a freed slot if available.
func (r *Registry) Register(m *Mesh) int32 {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.meshes[idx] = m
		return idx
	}
	r.meshes = append(r.meshes, m)
	return int32(len(r.meshes) - 1)
}

// Unregister frees an index for reuse. Unknown indices are ignored.
func (r *Registry) Unregister(idx int32) {
	if idx < 0 || int(idx) >= len(r.meshes) || r.meshes[idx] == nil {
		return
	}
	r.meshes[idx] = nil
	r.free = append(r.free, idx)
}

// Has reports whether a mesh is registered at idx.
func (r *Registry) Has(idx int32) bool {
	return idx >= 0 && int(idx) < len(r.meshes) && r.meshes[idx] != nil
}

// Get returns the mesh at idx, or nil if the index is unregistered or out of range.
func (r *Registry) Get(idx int32) *Mesh {
	if idx < 0 || int(idx) >= len(r.meshes) {
		return nil
	}
	return r.meshes[idx]
}

// Count returns the number of live meshes.
func (r *Registry) Count() int {
	return len(r.meshes) - len(r.free)
}
