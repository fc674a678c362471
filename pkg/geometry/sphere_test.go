package geometry

import (
	"math"
	"testing"

	"github.com/kestrelrt/kestrel/pkg/core"
	"github.com/kestrelrt/kestrel/pkg/material"
)

func testMaterial() core.Material {
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

// A ray aimed at the center from outside hits at exactly the distance to
// the surface, with the normal opposing the ray.
func TestSphere_Hit_DistanceToSurface(t *testing.T) {
	center := core.NewVec3(3, 4, 0)
	sphere := NewSphere(center, 0.5, testMaterial())

	origin := core.NewVec3(0, 0, 0)
	direction := center.Subtract(origin).Normalize()
	ray := core.NewRay(origin, direction)

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	expectedT := center.Length() - 0.5 // |center| = 5
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
	}

	// Normal is anti-parallel to the ray direction at a head-on hit
	if hit.Normal.Add(direction).Length() > 1e-9 {
		t.Errorf("Expected normal opposing ray direction, got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit from outside the sphere")
	}
}

func TestSphere_Hit_RangeSelectsFartherRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -3), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Closer root is at t=2; excluding it must yield the farther root at t=4
	hit, isHit := sphere.Hit(ray, 3.0, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on farther root, but got miss")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}

	// Excluding both roots must miss
	if _, isHit := sphere.Hit(ray, 5.0, 1000.0); isHit {
		t.Error("Expected miss when both roots are outside the range")
	}
}

func TestSphere_Hit_MaterialAttached(t *testing.T) {
	mat := testMaterial()
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, mat)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != mat {
		t.Error("Expected hit record to carry the sphere's material")
	}
}

func TestSphere_ScaleTranslate(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, testMaterial())

	sphere.Scale(core.NewVec3(2, 2, 2))
	if sphere.Center != core.NewVec3(2, 4, 6) {
		t.Errorf("Expected center (2,4,6), got %v", sphere.Center)
	}
	if sphere.Radius != 0.5 {
		t.Errorf("Expected radius unchanged by scale, got %f", sphere.Radius)
	}

	sphere.Translate(core.NewVec3(-2, -4, -6))
	if sphere.Center != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected center at origin, got %v", sphere.Center)
	}
}
