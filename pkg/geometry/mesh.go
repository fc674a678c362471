package geometry

import (
	"fmt"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// Mesh is an aggregate of triangles sharing one material. Intersection is
// a linear scan over all triangles; there is no spatial index.
type Mesh struct {
	triangles []*Triangle
	material  core.Material
}

// NewMesh builds a mesh from a vertex list and a flat face-index list
// (three indices per triangle).
func NewMesh(vertices []core.Vec3, faces []int, material core.Material) (*Mesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}

	m := &Mesh{
		triangles: make([]*Triangle, 0, len(faces)/3),
		material:  material,
	}
	for i := 0; i+2 < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		if i0 < 0 || i0 >= len(vertices) || i1 < 0 || i1 >= len(vertices) || i2 < 0 || i2 >= len(vertices) {
			return nil, fmt.Errorf("face %d references vertex out of range [0, %d)", i/3, len(vertices))
		}
		m.triangles = append(m.triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], material))
	}
	return m, nil
}

// Material returns the mesh's shared material
func (m *Mesh) Material() core.Material {
	return m.material
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Hit tests the ray against every triangle, keeping the closest hit
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax

	for _, tri := range m.triangles {
		if rec, ok := tri.Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = rec.T
			rec.Material = m.material
			closest = rec
		}
	}

	return closest, closest != nil
}

// Scale moves every vertex of the mesh component-wise
func (m *Mesh) Scale(factor core.Vec3) {
	for _, tri := range m.triangles {
		tri.Scale(factor)
	}
}

// Translate moves every vertex of the mesh by an offset
func (m *Mesh) Translate(offset core.Vec3) {
	for _, tri := range m.triangles {
		tri.Translate(offset)
	}
}
