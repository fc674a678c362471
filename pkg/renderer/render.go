package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// Integrator estimates the radiance arriving along a ray.
type Integrator interface {
	RayColor(ray core.Ray, scn core.Scene, rng *core.PCG32, depth int) core.Vec3
}

// Options contains rendering configuration
type Options struct {
	SamplesPerPixel int         // Rays per pixel for anti-aliasing
	MaxDepth        int         // Reflection recursion budget
	NumWorkers      int         // Goroutines; 0 means runtime.NumCPU()
	Seed            uint64      // Master RNG seed
	Logger          core.Logger // Optional progress sink
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: 4,
		MaxDepth:        10,
		NumWorkers:      0,
		Seed:            core.DefaultSeed,
	}
}

// Render traces the scene through the camera into a row-major pixel
// buffer of linear RGB values. The buffer is neither clamped nor gamma
// encoded; that is the serializer's job.
//
// Work is distributed one scanline at a time: a fixed pool of goroutines
// claims rows from a shared atomic cursor until the image is exhausted,
// so each pixel is written exactly once by exactly one goroutine. The
// scene and camera are treated as read-only for the duration. Render
// returns only after every worker has finished.
//
// Output is bit-reproducible for a fixed Seed only when NumWorkers is 1:
// with more workers the row→worker assignment depends on scheduling, and
// each worker's generator advances per claimed row.
func Render(scn core.Scene, cam *Camera, integ Integrator, opts Options) []core.Vec3 {
	if opts.SamplesPerPixel <= 0 {
		opts.SamplesPerPixel = 1
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 10
	}
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	width, height := cam.Width(), cam.Height()
	pixels := make([]core.Vec3, width*height)

	master := core.NewPCG32(opts.Seed, core.DefaultStream)

	var nextRow atomic.Int64
	var wg sync.WaitGroup
	for workerID := 0; workerID < numWorkers; workerID++ {
		// Per-worker generator: master output plus the worker index as
		// seed, worker index as the stream. Sharing one generator across
		// workers would be a data race.
		seed := uint64(master.Next()) + uint64(workerID)
		wg.Add(1)
		go func(workerID int, seed uint64) {
			defer wg.Done()
			rng := core.NewPCG32(seed, uint64(workerID))

			for {
				row := int(nextRow.Add(1)) - 1
				if row >= height {
					return
				}
				if opts.Logger != nil && row%50 == 0 {
					opts.Logger.Printf("scanline %d/%d", row, height)
				}
				renderRow(scn, cam, integ, opts, pixels, row, rng)
			}
		}(workerID, seed)
	}
	wg.Wait()

	return pixels
}

// renderRow fills one scanline of the pixel buffer with multi-sample
// averaged radiance estimates.
func renderRow(scn core.Scene, cam *Camera, integ Integrator, opts Options, pixels []core.Vec3, row int, rng *core.PCG32) {
	width, height := cam.Width(), cam.Height()

	for i := 0; i < width; i++ {
		var pixelColor core.Vec3
		for s := 0; s < opts.SamplesPerPixel; s++ {
			u := (float64(i) + rng.Float64()) / float64(width-1)
			v := (float64(row) + rng.Float64()) / float64(height-1)
			ray := cam.GetRay(u, v)
			pixelColor = pixelColor.Add(integ.RayColor(ray, scn, rng, opts.MaxDepth))
		}
		pixels[row*width+i] = pixelColor.Multiply(1.0 / float64(opts.SamplesPerPixel))
	}
}
