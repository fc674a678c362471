package core

// Logger is the minimal logging surface the renderer needs. A *log.Logger
// satisfies it directly; tests substitute their own.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material determines how a surface responds to light.
type Material interface {
	// Scatter produces an outgoing ray and attenuation for an incoming
	// ray at a hit point. A false result means full absorption.
	Scatter(rayIn Ray, rec *HitRecord, rng *PCG32) (ScatterResult, bool)
	// Color returns the surface color used by the direct-lighting path.
	Color() Vec3
	// Reflectivity returns the mirror blend weight in [0, 1].
	Reflectivity() float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation carried by the scattered ray
}

// Shape is anything a ray can intersect.
type Shape interface {
	// Hit reports the closest intersection with t in [tMin, tMax], if any.
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	// Material returns the material owned by this shape.
	Material() Material
}

// Scene is the aggregate the integrator traces against.
type Scene interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	Lights() []PointLight
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, oriented against the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// The stored normal always points against the incoming ray, so shading
// code can assume it faces the viewer side.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// PointLight is a positional light with a raw RGB radiant intensity
// (not normalized per steradian).
type PointLight struct {
	Position  Vec3
	Intensity Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity Vec3) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// SampleDirection returns the unit direction from p toward the light.
func (l PointLight) SampleDirection(p Vec3) Vec3 {
	return l.Position.Subtract(p).Normalize()
}
