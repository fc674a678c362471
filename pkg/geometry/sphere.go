package geometry

import (
	"math"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// Sphere represents an analytic sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.material
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Quadratic equation coefficients using the half-b convention
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	rec := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.material,
	}
	outwardNormal := rec.Point.Subtract(s.Center).Divide(s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)

	return rec, true
}

// Scale moves the sphere's center component-wise. Transforms are affine
// moves of positions only, so the radius is untouched.
func (s *Sphere) Scale(factor core.Vec3) {
	s.Center = s.Center.MultiplyVec(factor)
}

// Translate moves the sphere's center by an offset
func (s *Sphere) Translate(offset core.Vec3) {
	s.Center = s.Center.Add(offset)
}
