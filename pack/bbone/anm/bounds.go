package anm

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hamulous/bbone_browser/pack/bbone/atlas"
)

// Apply transforms a point by the affine matrix.
func (m Matrix) Apply(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		m.A*v.X() + m.C*v.Y() + m.TX,
		m.B*v.X() + m.D*v.Y() + m.TY,
	}
}

// Bounds computes the world-space rectangle covered by every present piece
// across every frame, from the piece bitmap rects pushed through the track
// matrices. Used to derive a default stage size. ok is false when nothing
// with a known bitmap size is ever present.
func (t *Timeline) Bounds(catalog *atlas.Catalog) (min, max mgl64.Vec2, ok bool) {
	first := true

	for _, name := range t.Order {
		piece, found := catalog.Get(name)
		if !found || piece.W == 0 || piece.H == 0 {
			continue
		}
		w, h := float64(piece.W), float64(piece.H)
		corners := [4]mgl64.Vec2{{0, 0}, {w, 0}, {0, h}, {w, h}}

		for _, key := range t.Tracks[name] {
			if !key.Present {
				continue
			}
			for _, corner := range corners {
				p := key.Matrix.Apply(corner)
				if first {
					min, max = p, p
					first = false
					continue
				}
				min = mgl64.Vec2{math.Min(min.X(), p.X()), math.Min(min.Y(), p.Y())}
				max = mgl64.Vec2{math.Max(max.X(), p.X()), math.Max(max.Y(), p.Y())}
			}
		}
	}

	return min, max, !first
}
