package geometry

import (
	"math"
	"testing"

	"github.com/kestrelrt/kestrel/pkg/core"
	"github.com/kestrelrt/kestrel/pkg/material"
)

// Two parallel unit quads facing +z, the first at z=-2, the second at z=-4.
func twoQuadMesh(mat core.Material) *Mesh {
	vertices := []core.Vec3{
		{X: -1, Y: -1, Z: -2}, {X: 1, Y: -1, Z: -2}, {X: 1, Y: 1, Z: -2}, {X: -1, Y: 1, Z: -2},
		{X: -1, Y: -1, Z: -4}, {X: 1, Y: -1, Z: -4}, {X: 1, Y: 1, Z: -4}, {X: -1, Y: 1, Z: -4},
	}
	faces := []int{
		0, 1, 2, 0, 2, 3,
		4, 5, 6, 4, 6, 7,
	}
	mesh, err := NewMesh(vertices, faces, mat)
	if err != nil {
		panic(err)
	}
	return mesh
}

func TestNewMesh_Validation(t *testing.T) {
	vertices := []core.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}

	if _, err := NewMesh(vertices, []int{0, 1}, testMaterial()); err == nil {
		t.Error("Expected error for face index count not divisible by 3")
	}
	if _, err := NewMesh(vertices, []int{0, 1, 3}, testMaterial()); err == nil {
		t.Error("Expected error for out-of-range vertex index")
	}

	mesh, err := NewMesh(vertices, []int{0, 1, 2}, testMaterial())
	if err != nil {
		t.Fatalf("Expected valid mesh, got error: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("Expected 1 triangle, got %d", mesh.TriangleCount())
	}
}

func TestMesh_Hit_KeepsClosest(t *testing.T) {
	mesh := twoQuadMesh(testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := mesh.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected closest quad at t=2, got t=%f", hit.T)
	}

	// Excluding the closer quad exposes the farther one
	hit, isHit = mesh.Hit(ray, 3.0, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on farther quad, but got miss")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected farther quad at t=4, got t=%f", hit.T)
	}
}

func TestMesh_Hit_SharedMaterial(t *testing.T) {
	mat := material.NewConductor(core.NewVec3(0.9, 0.9, 0.9))
	mesh := twoQuadMesh(mat)
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 0, -1))

	hit, isHit := mesh.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != core.Material(mat) {
		t.Error("Expected hit record to carry the mesh's shared material")
	}
}

func TestMesh_ScaleTranslate(t *testing.T) {
	mesh := twoQuadMesh(testMaterial())
	mesh.Scale(core.NewVec3(1, 1, 2))
	mesh.Translate(core.NewVec3(0, 0, 1))

	// First quad moved from z=-2 to z=-3
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := mesh.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on transformed mesh")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected transformed quad at t=3, got t=%f", hit.T)
	}
}
