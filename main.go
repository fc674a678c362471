package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kestrelrt/kestrel/pkg/core"
	"github.com/kestrelrt/kestrel/pkg/integrator"
	"github.com/kestrelrt/kestrel/pkg/renderer"
	"github.com/kestrelrt/kestrel/pkg/scene"
)

func main() {
	scenePath := flag.String("scene", "", "Scene description file (empty: built-in default scene)")
	output := flag.String("out", "output.ppm", "Output image path (.ppm or .png)")
	samplesPerPixel := flag.Int("spp", 4, "Samples per pixel for anti-aliasing")
	maxDepth := flag.Int("depth", 10, "Maximum reflection recursion depth")
	shadowSamples := flag.Int("shadow-samples", 2, "Shadow rays per light per shading point")
	workers := flag.Int("workers", 0, "Render goroutines (0: number of CPUs)")
	seed := flag.Uint64("seed", 0, "Master RNG seed (0: default seed)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	if err := run(*scenePath, *output, *samplesPerPixel, *maxDepth, *shadowSamples, *workers, *seed, logger); err != nil {
		logger.Printf("error: %v", err)
		os.Exit(1)
	}
}

func run(scenePath, output string, samplesPerPixel, maxDepth, shadowSamples, workers int, seed uint64, logger *log.Logger) error {
	var scn *scene.Scene
	if scenePath != "" {
		var err error
		scn, err = scene.ReadFile(scenePath, logger)
		if err != nil {
			return err
		}
		logger.Printf("loaded scene %s", scenePath)
	} else {
		scn = scene.NewDefaultScene()
		logger.Printf("using built-in default scene")
	}

	opts := renderer.DefaultOptions()
	opts.SamplesPerPixel = samplesPerPixel
	opts.MaxDepth = maxDepth
	opts.NumWorkers = workers
	opts.Logger = logger
	if seed != 0 {
		opts.Seed = seed
	}

	cam := scn.Camera
	logger.Printf("rendering %dx%d image, %d samples/pixel", cam.Width(), cam.Height(), opts.SamplesPerPixel)

	start := time.Now()
	pixels := renderer.Render(scn, cam, integrator.NewWhitted(shadowSamples), opts)
	logger.Printf("render completed in %v", time.Since(start))

	if err := writeImage(output, pixels, cam.Width(), cam.Height()); err != nil {
		return err
	}
	logger.Printf("wrote %s", output)
	return nil
}

func writeImage(path string, pixels []core.Vec3, width, height int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	switch filepath.Ext(path) {
	case ".png":
		if err := png.Encode(file, renderer.ToImage(pixels, width, height)); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	default:
		if err := renderer.WritePPM(file, pixels, width, height); err != nil {
			return fmt.Errorf("encode PPM: %w", err)
		}
	}
	return nil
}
