package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kestrelrt/kestrel/pkg/core"
	"github.com/kestrelrt/kestrel/pkg/geometry"
	"github.com/kestrelrt/kestrel/pkg/loaders"
	"github.com/kestrelrt/kestrel/pkg/material"
	"github.com/kestrelrt/kestrel/pkg/renderer"
)

// ReadFile parses a scene description file. Relative mesh filenames are
// resolved against the file's directory.
func ReadFile(path string, logger core.Logger) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene file: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Dir(path), logger)
}

// Read parses a scene description. The format is a line-oriented subset
// of Mitsuba-style XML: one element per line, attributes as key="value"
// pairs, matched by substring rather than a full XML parse. Unknown
// elements are logged and skipped; a shape whose material reference
// cannot be resolved falls back to a default gray Lambertian.
func Read(r io.Reader, dir string, logger core.Logger) (*Scene, error) {
	p := &parser{
		scanner: bufio.NewScanner(r),
		dir:     dir,
		logger:  logger,
		scene:   New(nil),
	}
	return p.parse()
}

type parser struct {
	scanner *bufio.Scanner
	dir     string
	logger  core.Logger
	scene   *Scene
}

func (p *parser) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

func (p *parser) nextLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}

func (p *parser) parse() (*Scene, error) {
	line, ok := p.nextLine()
	for ok && strings.TrimSpace(line) == "" {
		line, ok = p.nextLine()
	}
	if !ok || !strings.Contains(line, "<scene>") {
		return nil, fmt.Errorf("scene description must start with <scene>")
	}

	for {
		line, ok := p.nextLine()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			continue
		case strings.Contains(line, "<!--"):
			if err := p.skipUntil(line, "-->"); err != nil {
				return nil, err
			}
		case strings.Contains(line, "</scene>"):
			if err := p.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read scene description: %w", err)
			}
			if p.scene.Camera == nil {
				return nil, fmt.Errorf("scene description has no camera")
			}
			return p.scene, nil
		case strings.Contains(line, "<camera"):
			if err := p.parseCamera(line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "<emitter"):
			if err := p.parseEmitter(line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "<bsdf"):
			if err := p.parseBSDF(line); err != nil {
				return nil, err
			}
		case strings.Contains(line, "<shape"):
			if err := p.parseShape(line); err != nil {
				return nil, err
			}
		default:
			p.logf("unknown scene element, skipping: %s", trimmed)
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scene description: %w", err)
	}
	return nil, fmt.Errorf("scene description has no closing </scene>")
}

// skipUntil consumes lines until one contains the marker. The line that
// opened the block counts.
func (p *parser) skipUntil(line, marker string) error {
	for !strings.Contains(line, marker) {
		var ok bool
		line, ok = p.nextLine()
		if !ok {
			return fmt.Errorf("unterminated block, expected %s", marker)
		}
	}
	return nil
}

func (p *parser) parseCamera(opening string) error {
	if !strings.Contains(opening, "perspective") {
		p.logf("unsupported camera type, skipping: %s", strings.TrimSpace(opening))
		return p.skipUntil(opening, "</camera>")
	}

	var fov, width, height float64
	var lookFrom, lookAt, up core.Vec3
	haveLookAt := false

	for {
		line, ok := p.nextLine()
		if !ok {
			return fmt.Errorf("unterminated <camera> element")
		}
		if strings.Contains(line, "</camera>") {
			break
		}

		switch {
		case strings.Contains(line, "fov"):
			v, err := floatAttr(line, "value")
			if err != nil {
				return fmt.Errorf("camera fov: %w", err)
			}
			fov = v
		case strings.Contains(line, "width"):
			v, err := floatAttr(line, "value")
			if err != nil {
				return fmt.Errorf("camera width: %w", err)
			}
			width = v
		case strings.Contains(line, "height"):
			v, err := floatAttr(line, "value")
			if err != nil {
				return fmt.Errorf("camera height: %w", err)
			}
			height = v
		case strings.Contains(line, "lookat"):
			var err error
			if lookFrom, err = vecAttr(line, "origin"); err != nil {
				return fmt.Errorf("camera lookat: %w", err)
			}
			if lookAt, err = vecAttr(line, "target"); err != nil {
				return fmt.Errorf("camera lookat: %w", err)
			}
			if up, err = vecAttr(line, "up"); err != nil {
				return fmt.Errorf("camera lookat: %w", err)
			}
			haveLookAt = true
		}
	}

	if fov <= 0 || width <= 0 || height <= 0 || !haveLookAt {
		return fmt.Errorf("camera element is missing fov, width, height or lookat")
	}

	p.scene.Camera = renderer.NewCamera(lookFrom, lookAt, up, fov, int(width), width/height)
	return nil
}

func (p *parser) parseEmitter(opening string) error {
	if !strings.Contains(opening, "point") {
		p.logf("unsupported emitter type, skipping: %s", strings.TrimSpace(opening))
		return p.skipUntil(opening, "</emitter>")
	}

	position := core.NewVec3(0, 0, 0)
	intensity := core.NewVec3(1, 1, 1)

	for {
		line, ok := p.nextLine()
		if !ok {
			return fmt.Errorf("unterminated <emitter> element")
		}
		if strings.Contains(line, "</emitter>") {
			break
		}

		switch {
		case strings.Contains(line, "position"):
			v, err := vecAttr(line, "value")
			if err != nil {
				return fmt.Errorf("emitter position: %w", err)
			}
			position = v
		case strings.Contains(line, "intensity"):
			v, err := vecAttr(line, "value")
			if err != nil {
				return fmt.Errorf("emitter intensity: %w", err)
			}
			intensity = v
		}
	}

	p.scene.AddLight(core.NewPointLight(position, intensity))
	return nil
}

func (p *parser) parseBSDF(opening string) error {
	id, _ := attr(opening, "id")

	var kind string
	switch {
	case strings.Contains(opening, "lambertian"):
		kind = "lambertian"
	case strings.Contains(opening, "conductor"):
		kind = "conductor"
	default:
		p.logf("unsupported bsdf type, skipping: %s", strings.TrimSpace(opening))
		return p.skipUntil(opening, "</bsdf>")
	}

	albedo := core.NewVec3(0, 0, 0)
	for {
		line, ok := p.nextLine()
		if !ok {
			return fmt.Errorf("unterminated <bsdf> element")
		}
		if strings.Contains(line, "</bsdf>") {
			break
		}

		// Lambertians carry a "color" value, conductors an "eta" value;
		// both fill the albedo.
		if strings.Contains(line, "color") || strings.Contains(line, "eta") {
			v, err := vecAttr(line, "value")
			if err != nil {
				return fmt.Errorf("bsdf %q: %w", id, err)
			}
			albedo = v
		}
	}

	var m core.Material
	if kind == "lambertian" {
		m = material.NewLambertian(albedo)
	} else {
		m = material.NewConductor(albedo)
	}
	p.scene.AddMaterial(id, m)
	return nil
}

func (p *parser) parseShape(opening string) error {
	switch {
	case strings.Contains(opening, "sphere"):
		return p.parseSphere()
	case strings.Contains(opening, "\"ply\""), strings.Contains(opening, "\"obj\""):
		return p.parseMesh(opening)
	default:
		p.logf("unsupported shape type, skipping: %s", strings.TrimSpace(opening))
		return p.skipUntil(opening, "</shape>")
	}
}

func (p *parser) parseSphere() error {
	center := core.NewVec3(0, 0, 0)
	radius := 1.0
	ref := ""

	for {
		line, ok := p.nextLine()
		if !ok {
			return fmt.Errorf("unterminated <shape> element")
		}
		if strings.Contains(line, "</shape>") {
			break
		}

		switch {
		case strings.Contains(line, "center"):
			v, err := vecAttr(line, "value")
			if err != nil {
				return fmt.Errorf("sphere center: %w", err)
			}
			center = v
		case strings.Contains(line, "radius"):
			v, err := floatAttr(line, "value")
			if err != nil {
				return fmt.Errorf("sphere radius: %w", err)
			}
			radius = v
		case strings.Contains(line, "<ref"):
			ref, _ = attr(line, "id")
		}
	}

	p.scene.AddShape(geometry.NewSphere(center, radius, p.resolveMaterial(ref)))
	return nil
}

func (p *parser) parseMesh(opening string) error {
	isPLY := strings.Contains(opening, "\"ply\"")

	filename := ""
	ref := ""
	scale := core.NewVec3(1, 1, 1)
	translate := core.NewVec3(0, 0, 0)
	hasTransform := false

	for {
		line, ok := p.nextLine()
		if !ok {
			return fmt.Errorf("unterminated <shape> element")
		}
		if strings.Contains(line, "</shape>") {
			break
		}

		switch {
		case strings.Contains(line, "filename"):
			filename, _ = attr(line, "value")
		case strings.Contains(line, "<ref"):
			ref, _ = attr(line, "id")
		case strings.Contains(line, "<scale"):
			v, err := vecAttr(line, "value")
			if err != nil {
				return fmt.Errorf("mesh scale: %w", err)
			}
			scale = v
			hasTransform = true
		case strings.Contains(line, "<translate"):
			v, err := vecAttr(line, "value")
			if err != nil {
				return fmt.Errorf("mesh translate: %w", err)
			}
			translate = v
			hasTransform = true
		}
	}

	if filename == "" {
		return fmt.Errorf("mesh shape has no filename")
	}
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(p.dir, filename)
	}

	var data *loaders.MeshData
	var err error
	if isPLY {
		data, err = loaders.LoadPLY(filename)
	} else {
		data, err = loaders.LoadOBJ(filename, p.logger)
	}
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}

	mesh, err := geometry.NewMesh(data.Vertices, data.Faces, p.resolveMaterial(ref))
	if err != nil {
		return fmt.Errorf("build mesh from %s: %w", filename, err)
	}
	if hasTransform {
		mesh.Scale(scale)
		mesh.Translate(translate)
	}
	p.logf("loaded mesh %s: %d vertices, %d triangles", filename, len(data.Vertices), mesh.TriangleCount())

	p.scene.AddShape(mesh)
	return nil
}

// resolveMaterial looks up a registered material, falling back to a
// default gray Lambertian when the reference is absent or unknown.
func (p *parser) resolveMaterial(id string) core.Material {
	if id != "" {
		if m, ok := p.scene.MaterialByID(id); ok {
			return m
		}
		p.logf("bsdf reference %q not found, using default material", id)
	} else {
		p.logf("shape has no bsdf reference, using default material")
	}
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

// attr extracts the value of a key="value" attribute from a line.
func attr(line, name string) (string, bool) {
	marker := name + "=\""
	start := strings.Index(line, marker)
	if start < 0 {
		return "", false
	}
	rest := line[start+len(marker):]
	end := strings.Index(rest, "\"")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func floatAttr(line, name string) (float64, error) {
	raw, ok := attr(line, name)
	if !ok {
		return 0, fmt.Errorf("missing %s attribute in %q", name, strings.TrimSpace(line))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s attribute %q", name, raw)
	}
	return v, nil
}

// vecAttr parses an "x, y, z" attribute value into a Vec3.
func vecAttr(line, name string) (core.Vec3, error) {
	raw, ok := attr(line, name)
	if !ok {
		return core.Vec3{}, fmt.Errorf("missing %s attribute in %q", name, strings.TrimSpace(line))
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("bad vector attribute %q, want \"x, y, z\"", raw)
	}
	var vals [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad vector attribute %q", raw)
		}
		vals[i] = v
	}
	return core.NewVec3(vals[0], vals[1], vals[2]), nil
}
