package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name           string
		input          Vec3
		expectedLength float64
	}{
		{"unit x", NewVec3(1, 0, 0), 1.0},
		{"arbitrary", NewVec3(1, 2, 3), 1.0},
		{"tiny", NewVec3(1e-8, -1e-8, 1e-8), 1.0},
		{"negative components", NewVec3(-4, 5, -6), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.input.Normalize()
			if math.Abs(n.Length()-tt.expectedLength) > 1e-12 {
				t.Errorf("Expected length %f, got %f", tt.expectedLength, n.Length())
			}
		})
	}
}

func TestVec3_Normalize_Zero(t *testing.T) {
	n := NewVec3(0, 0, 0).Normalize()
	if n.X != 0 || n.Y != 0 || n.Z != 0 {
		t.Errorf("Expected zero vector, got %v", n)
	}
}

func TestVec3_DotCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	if got := a.Dot(b); got != 0 {
		t.Errorf("Expected orthogonal dot product 0, got %f", got)
	}

	c := a.Cross(b)
	expected := NewVec3(0, 0, 1)
	if c != expected {
		t.Errorf("Expected cross product %v, got %v", expected, c)
	}

	// Cross product is perpendicular to both inputs
	if c.Dot(a) != 0 || c.Dot(b) != 0 {
		t.Errorf("Cross product %v not perpendicular to inputs", c)
	}
}

func TestReflect_Involution(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		n    Vec3
	}{
		{"head on", NewVec3(0, 0, -1), NewVec3(0, 0, 1)},
		{"grazing", NewVec3(1, -0.1, 0), NewVec3(0, 1, 0)},
		{"oblique", NewVec3(1, -2, 3), NewVec3(0, 1, 0).Normalize()},
		{"tilted normal", NewVec3(-1, -1, -1), NewVec3(1, 1, 0).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twice := Reflect(Reflect(tt.v, tt.n), tt.n)
			if twice.Subtract(tt.v).Length() > 1e-12 {
				t.Errorf("Expected reflect(reflect(v,n),n) == v, got %v for v=%v", twice, tt.v)
			}
		})
	}
}

func TestReflect_MirrorsAboutNormal(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	r := Reflect(v, n)
	expected := NewVec3(1, 1, 0)
	if r.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	expected := NewVec3(0, 0.5, 1)
	if v != expected {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	p := ray.At(1.5)
	expected := NewVec3(1, 2, 0)
	if p.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, p)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	tests := []struct {
		name           string
		rayDirection   Vec3
		expectedFront  bool
		expectedNormal Vec3
	}{
		{"ray against normal", NewVec3(0, 0, -1), true, NewVec3(0, 0, 1)},
		{"ray along normal", NewVec3(0, 0, 1), false, NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &HitRecord{}
			rec.SetFaceNormal(NewRay(NewVec3(0, 0, 0), tt.rayDirection), outward)

			if rec.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, rec.FrontFace)
			}
			if rec.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, rec.Normal)
			}
		})
	}
}

func TestPointLight_SampleDirection(t *testing.T) {
	light := NewPointLight(NewVec3(0, 4, 0), NewVec3(10, 10, 10))
	dir := light.SampleDirection(NewVec3(0, 0, 0))

	if math.Abs(dir.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", dir.Length())
	}
	expected := NewVec3(0, 1, 0)
	if dir.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expected, dir)
	}
}
