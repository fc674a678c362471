package integrator

import (
	"math"

	"github.com/kestrelrt/kestrel/pkg/core"
)

const (
	// Intersection search interval for primary and secondary rays.
	tMin = 0.001
	tMax = 1000.0

	// Offset along the surface normal for shadow and reflection ray
	// origins. Without it, rounding at the hit point makes surfaces
	// shadow themselves.
	surfaceBias = 0.001

	// Keeps the inverse-square falloff finite at zero distance.
	distanceEpsilon = 1e-4
)

// Whitted is a recursive radiance estimator combining analytic direct
// lighting with shadow visibility testing and specular reflection
// bounces. Diffuse interreflection is not gathered; the material scatter
// path exists for stochastic sampling by callers that want it.
type Whitted struct {
	ShadowSamples int       // Shadow rays cast per light per shading point
	Background    core.Vec3 // Radiance returned for rays that escape the scene
}

// NewWhitted creates an estimator with the given shadow sample count
func NewWhitted(shadowSamples int) *Whitted {
	if shadowSamples <= 0 {
		shadowSamples = 2
	}
	return &Whitted{
		ShadowSamples: shadowSamples,
		Background:    core.NewVec3(0, 0, 0),
	}
}

// RayColor estimates the radiance arriving along ray. The depth budget
// bounds the reflection recursion; at depth 0 the estimate is exactly
// black regardless of scene content.
func (w *Whitted) RayColor(ray core.Ray, scn core.Scene, rng *core.PCG32, depth int) core.Vec3 {
	if depth <= 0 {
		return core.NewVec3(0, 0, 0)
	}

	rec, ok := scn.Hit(ray, tMin, tMax)
	if !ok {
		return w.Background
	}

	direct := w.directLighting(rec, scn)

	reflectivity := rec.Material.Reflectivity()
	var reflected core.Vec3
	if reflectivity > 0 {
		incident := ray.Direction.Normalize()
		reflectedDir := core.Reflect(incident, rec.Normal)
		origin := rec.Point.Add(rec.Normal.Multiply(surfaceBias))
		reflected = w.RayColor(core.NewRay(origin, reflectedDir), scn, rng, depth-1).
			Multiply(reflectivity).
			MultiplyVec(rec.Material.Color())
	}

	// Linear blend between the diffuse and mirror responses
	return direct.Multiply(1 - reflectivity).Add(reflected)
}

// directLighting sums the contribution of every light at the hit point,
// attenuated by shadow visibility and inverse-square falloff.
func (w *Whitted) directLighting(rec *core.HitRecord, scn core.Scene) core.Vec3 {
	total := core.NewVec3(0, 0, 0)

	for _, light := range scn.Lights() {
		lightDir := light.SampleDirection(rec.Point)
		distance := light.Position.Subtract(rec.Point).Length()

		// Cast shadow rays toward the light position, counting how many
		// reach it unoccluded.
		visible := 0
		origin := rec.Point.Add(rec.Normal.Multiply(surfaceBias))
		for i := 0; i < w.ShadowSamples; i++ {
			shadowRay := core.NewRay(origin, lightDir)
			if _, blocked := scn.Hit(shadowRay, tMin, distance-surfaceBias); !blocked {
				visible++
			}
		}
		visibility := float64(visible) / float64(w.ShadowSamples)

		cosTheta := math.Max(0, rec.Normal.Dot(lightDir))
		contribution := rec.Material.Color().
			MultiplyVec(light.Intensity).
			Multiply(cosTheta * visibility / (distance*distance + distanceEpsilon))

		total = total.Add(contribution)
	}

	return total
}
