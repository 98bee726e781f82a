package systems

import (
	"github.com/pthm-cable/voidrift/components"
	"github.com/pthm-cable/voidrift/renderer"
)

// SyncMeshes copies transforms and visibility flags out to the mesh
// registry. The copy is one-way and idempotent; entities whose mesh index
// is unregistered or out of range are silently skipped. This must run
// strictly last in the tick so readers see a fully advanced store.
func SyncMeshes(s *components.Store, reg *renderer.Registry, entities []components.Entity) {
	for _, e := range entities {
		if !s.InRange(e) {
			continue
		}
		m := reg.Get(s.Mesh.Index[e])
		if m == nil {
			continue
		}

		m.Position = s.Position(e)
		m.Rotation = s.Rotation(e)
		m.Scale = s.ScaleVec(e)
		m.Visible = s.Render.Visible[e] != 0
		m.CastShadow = s.Render.CastShadow[e] != 0
		m.ReceiveShadow = s.Render.ReceiveShadow[e] != 0
	}
}
