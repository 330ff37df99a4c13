// Package cursor turns the Ebitengine mouse into a reach actor: the cursor
// position becomes a pose on a plane in world space, and a mouse button
// becomes select input for reach.ButtonPolicy.
package cursor

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/reach"
)

// Source projects the cursor onto the plane Z = Depth. OriginX/OriginY is
// the screen pixel that maps to the world origin, and Scale is world units
// per pixel. With FlipY the world Y axis points up the screen.
type Source struct {
	OriginX, OriginY float64
	Scale            float64
	Depth            float64
	FlipY            bool
}

// Pose implements reach.PoseSource by reading ebiten.CursorPosition.
func (s *Source) Pose() reach.Pose {
	x, y := ebiten.CursorPosition()
	return s.Project(float64(x), float64(y))
}

// Project converts a screen point to a pose on the plane.
func (s *Source) Project(sx, sy float64) reach.Pose {
	scale := s.scale()
	wy := (sy - s.OriginY) * scale
	if s.FlipY {
		wy = -wy
	}
	return reach.PoseAt(reach.Vec3{
		X: (sx - s.OriginX) * scale,
		Y: wy,
		Z: s.Depth,
	})
}

// Unproject converts a world point back to screen pixels, ignoring Z.
func (s *Source) Unproject(p reach.Vec3) (float64, float64) {
	scale := s.scale()
	wy := p.Y
	if s.FlipY {
		wy = -wy
	}
	return p.X/scale + s.OriginX, wy/scale + s.OriginY
}

func (s *Source) scale() float64 {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// Button returns select input for reach.ButtonPolicy.Input that reports
// whether b is held.
func Button(b ebiten.MouseButton) func() bool {
	return func() bool { return ebiten.IsMouseButtonPressed(b) }
}
