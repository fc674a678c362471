package material

import (
	"math"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements diffuse scattering: the outgoing direction is the
// surface normal plus a random point on the unit sphere, which yields a
// cosine-weighted hemisphere distribution.
func (l *Lambertian) Scatter(rayIn core.Ray, rec *core.HitRecord, rng *core.PCG32) (core.ScatterResult, bool) {
	scatterDirection := rec.Normal.Add(core.RandomUnitVector(rng))
	return core.ScatterResult{
		Scattered:   core.NewRay(rec.Point, scatterDirection),
		Attenuation: l.Albedo.Multiply(1.0 / math.Pi),
	}, true
}

// Color returns the albedo normalized by pi for energy conservation.
// The same convention is used for the scatter attenuation; the two are
// never mixed.
func (l *Lambertian) Color() core.Vec3 {
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// Reflectivity returns 0: a diffuse surface has no mirror component
func (l *Lambertian) Reflectivity() float64 {
	return 0
}
