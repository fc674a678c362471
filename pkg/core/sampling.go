package core

import "math"

// RandomVec3 returns a vector with each component uniform in [min, max).
func RandomVec3(rng *PCG32, min, max float64) Vec3 {
	return Vec3{
		X: min + (max-min)*rng.Float64(),
		Y: min + (max-min)*rng.Float64(),
		Z: min + (max-min)*rng.Float64(),
	}
}

// RandomUnitVector returns a uniformly distributed point on the unit
// sphere, sampled directly from spherical coordinates.
func RandomUnitVector(rng *PCG32) Vec3 {
	a := 2 * math.Pi * rng.Float64()
	z := 2*rng.Float64() - 1
	r := math.Sqrt(1 - z*z)
	return Vec3{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
}

// RandomInUnitSphere returns a uniformly distributed point strictly
// inside the unit sphere, by rejection sampling.
func RandomInUnitSphere(rng *PCG32) Vec3 {
	for {
		p := RandomVec3(rng, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomOnHemisphere returns a uniformly distributed direction in the
// hemisphere around normal.
func RandomOnHemisphere(rng *PCG32, normal Vec3) Vec3 {
	p := RandomInUnitSphere(rng)
	if p.Dot(normal) > 0 {
		return p
	}
	return p.Negate()
}
