package material

import (
	"github.com/kestrelrt/kestrel/pkg/core"
)

// Conductor represents a smooth metallic mirror
type Conductor struct {
	Albedo       core.Vec3
	reflectivity float64
}

// NewConductor creates a fully reflective conductor
func NewConductor(albedo core.Vec3) *Conductor {
	return &Conductor{Albedo: albedo, reflectivity: 1.0}
}

// Scatter implements perfect mirror reflection. It always succeeds; a
// conductor never absorbs the ray.
func (c *Conductor) Scatter(rayIn core.Ray, rec *core.HitRecord, rng *core.PCG32) (core.ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), rec.Normal)
	return core.ScatterResult{
		Scattered:   core.NewRay(rec.Point, reflected),
		Attenuation: c.Albedo,
	}, true
}

// Color returns the conductor's albedo
func (c *Conductor) Color() core.Vec3 {
	return c.Albedo
}

// Reflectivity returns the mirror blend weight
func (c *Conductor) Reflectivity() float64 {
	return c.reflectivity
}
