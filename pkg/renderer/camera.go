package renderer

import (
	"math"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// Camera is a pinhole camera with configurable position, orientation and
// vertical field of view. It uses a right-handed coordinate system.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	width           int
	height          int
}

// NewCamera creates a perspective camera. lookFrom is the camera
// position, lookAt the point it faces, vup the up direction, vfov the
// vertical field of view in degrees. The image height is derived from
// the width and aspect ratio by rounding, so a ratio built from an
// exact pixel pair recovers that pair.
func NewCamera(lookFrom, lookAt, vup core.Vec3, vfov float64, width int, aspectRatio float64) *Camera {
	theta := vfov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := aspectRatio * halfHeight

	w := lookFrom.Subtract(lookAt).Normalize()
	u := vup.Cross(w).Normalize()
	v := w.Cross(u)

	origin := lookFrom
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth),
		vertical:        v.Multiply(2 * halfHeight),
		width:           width,
		height:          int(math.Round(float64(width) / aspectRatio)),
	}
}

// GetRay generates a ray through image-plane coordinates (s, t) in
// [0, 1]; (0, 0) is the lower-left corner, (1, 1) the upper-right.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}
