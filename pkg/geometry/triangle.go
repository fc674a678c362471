package geometry

import (
	"github.com/kestrelrt/kestrel/pkg/core"
)

const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	material   core.Material
	normal     core.Vec3 // Cached unit normal
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		material: material,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// Material returns the triangle's material
func (t *Triangle) Material() core.Material {
	return t.material
}

// Hit tests if a ray intersects with the triangle using the
// Möller-Trumbore algorithm.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// A near-zero determinant means the ray is parallel to the plane
	if det > -triangleEpsilon && det < triangleEpsilon {
		return nil, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := invDet * s.Dot(h)
	if u < -triangleEpsilon || u > 1+triangleEpsilon {
		return nil, false
	}

	q := s.Cross(edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < -triangleEpsilon || u+v > 1+triangleEpsilon {
		return nil, false
	}

	tParam := invDet * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	rec := &core.HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		Material: t.material,
	}
	rec.SetFaceNormal(ray, t.normal)

	return rec, true
}

// Scale moves the triangle's vertices component-wise
func (t *Triangle) Scale(factor core.Vec3) {
	t.V0 = t.V0.MultiplyVec(factor)
	t.V1 = t.V1.MultiplyVec(factor)
	t.V2 = t.V2.MultiplyVec(factor)
	t.computeNormal()
}

// Translate moves the triangle's vertices by an offset
func (t *Triangle) Translate(offset core.Vec3) {
	t.V0 = t.V0.Add(offset)
	t.V1 = t.V1.Add(offset)
	t.V2 = t.V2.Add(offset)
}
