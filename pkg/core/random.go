package core

// PCG32 is a permuted congruential generator (PCG-XSH-RR variant) with
// 64 bits of state and a 32-bit output, after Melissa O'Neill's PCG
// family. Instances are cheap and not safe for concurrent use; every
// render worker owns its own, independently seeded instance.
type PCG32 struct {
	state uint64
	inc   uint64
}

// Default seed and stream constants for callers that have no preference.
const (
	DefaultSeed   uint64 = 0x853c49e6748fea9b
	DefaultStream uint64 = 0xa02bdbf7bb3c0a7
)

const pcgMultiplier = 6364136223846793005

// NewPCG32 creates a generator from a seed and a stream selector.
// Generators with different streams produce statistically independent
// sequences even when seeded identically. Two warm-up advances mix the
// seed into the state before the first output.
func NewPCG32(seed, stream uint64) *PCG32 {
	p := &PCG32{state: 0, inc: (stream << 1) | 1}
	p.Next()
	p.state += seed
	p.Next()
	return p
}

// Next advances the generator and returns a uniform 32-bit value.
func (p *PCG32) Next() uint32 {
	oldState := p.state
	p.state = oldState*pcgMultiplier + p.inc
	xorshifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a uniform value in [0, 1).
func (p *PCG32) Float64() float64 {
	return float64(p.Next()) / (1 << 32)
}

// Uint64 returns a uniform 64-bit value from two successive outputs.
func (p *PCG32) Uint64() uint64 {
	return uint64(p.Next())<<32 | uint64(p.Next())
}

// Int63 returns a non-negative 63-bit value, satisfying math/rand.Source
// so a PCG32 can back a *rand.Rand where stdlib distributions are wanted.
func (p *PCG32) Int63() int64 {
	return int64(p.Uint64() >> 1)
}

// Seed re-seeds the generator in place, keeping its stream.
func (p *PCG32) Seed(seed int64) {
	p.state = 0
	p.Next()
	p.state += uint64(seed)
	p.Next()
}
