package scenegraph

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrStaleEntity reports a hit on an entity that is no longer live,
	// typically released by a rebuild between the hit and its handling.
	ErrStaleEntity = errors.New("scenegraph: stale entity")

	// ErrUnexpectedDepth reports a plane hit whose intersection is not at
	// the plane's depth.
	ErrUnexpectedDepth = errors.New("scenegraph: hit not at plane depth")
)

// DepthTolerance is the largest accepted distance between a plane hit and
// the plane's depth.
const DepthTolerance = 1e-3

// HitEvent is a ray intersection reported by a picking backend.
type HitEvent struct {
	Entity   EntityID
	Position mgl32.Vec3
}

// Hit is a resolved HitEvent.
type Hit struct {
	// Entity is the entity that was hit.
	Entity Entity

	// Base is the hit position mapped back to the base plane at depth 1.
	Base mgl32.Vec2

	// Nearest is the base point closest to Base. Valid only if HasNearest.
	Nearest    Entity
	HasNearest bool

	// Distance is the base-plane distance between Base and Nearest.
	Distance float32
}

// ResolveHit maps ev back to the live scene.
//
// A hit on an entity from an earlier generation returns ErrStaleEntity. A
// plane hit off the plane's depth returns ErrUnexpectedDepth. Callers log
// and drop both.
func (b *Builder) ResolveHit(ev HitEvent) (Hit, error) {
	var (
		hit   Hit
		err   error
		found bool
	)
	b.arena.view(func(g *generation) {
		e, ok := lookupIn(g, ev.Entity)
		if !ok {
			return
		}
		found = true
		hit.Entity = e

		pos := ev.Position
		if e.IsPoint() {
			pos = e.Position()
		}
		if e.Kind == KindPlane {
			if dz := pos.Z() - float32(e.Depth); dz > DepthTolerance || dz < -DepthTolerance {
				err = fmt.Errorf("%w: %s at z=%g, want %d", ErrUnexpectedDepth, e.Name, pos.Z(), e.Depth)
				return
			}
		}
		base := Unproject(pos, e.Depth)
		hit.Base = base.Vec2()

		for _, pt := range g.points() {
			d := pt.Position().Vec2().Sub(hit.Base).Len()
			if !hit.HasNearest || d < hit.Distance {
				hit.Nearest, hit.HasNearest, hit.Distance = pt, true, d
			}
		}
	})

	if !found {
		logger().Debug("hit on stale entity dropped", "entity", ev.Entity.String())
		return Hit{}, fmt.Errorf("%w: %s", ErrStaleEntity, ev.Entity)
	}
	if err != nil {
		logger().Warn("inconsistent hit dropped", "entity", ev.Entity.String(), "err", err)
		return Hit{}, err
	}
	return hit, nil
}

func lookupIn(g *generation, id EntityID) (Entity, bool) {
	if id.IsZero() || id.Generation != g.id || int(id.Slot) >= len(g.entities) {
		return Entity{}, false
	}
	return g.entities[id.Slot], true
}
