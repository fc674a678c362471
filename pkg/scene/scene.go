package scene

import (
	"github.com/kestrelrt/kestrel/pkg/core"
	"github.com/kestrelrt/kestrel/pkg/renderer"
)

// Scene aggregates a camera, shapes, point lights and a registry of
// named materials. Materials are registered by id so shapes loaded from
// a scene description can reference them; shapes hold the material
// values directly.
type Scene struct {
	Camera *renderer.Camera

	shapes    []core.Shape
	lights    []core.PointLight
	materials map[string]core.Material
}

// New creates an empty scene for the given camera
func New(camera *renderer.Camera) *Scene {
	return &Scene{
		Camera:    camera,
		materials: make(map[string]core.Material),
	}
}

// AddShape adds a shape to the scene
func (s *Scene) AddShape(shape core.Shape) {
	s.shapes = append(s.shapes, shape)
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(light core.PointLight) {
	s.lights = append(s.lights, light)
}

// AddMaterial registers a material under an id
func (s *Scene) AddMaterial(id string, m core.Material) {
	s.materials[id] = m
}

// MaterialByID looks up a registered material
func (s *Scene) MaterialByID(id string) (core.Material, bool) {
	m, ok := s.materials[id]
	return m, ok
}

// Shapes returns the scene's shapes
func (s *Scene) Shapes() []core.Shape {
	return s.shapes
}

// Lights returns the scene's point lights
func (s *Scene) Lights() []core.PointLight {
	return s.lights
}

// Hit finds the closest intersection along the ray within [tMin, tMax].
// Every shape is tested against a shrinking interval, and the winning
// record's material is stamped with the owning shape's material. The
// interval stays closed at closestSoFar, so a later shape hitting at
// exactly the same t overwrites the record: ties resolve to the last
// shape in insertion order. Nothing should rely on that.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax

	for _, shape := range s.shapes {
		if rec, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = rec.T
			rec.Material = shape.Material()
			closest = rec
		}
	}

	return closest, closest != nil
}
