package scene

import (
	"github.com/kestrelrt/kestrel/pkg/core"
	"github.com/kestrelrt/kestrel/pkg/geometry"
	"github.com/kestrelrt/kestrel/pkg/material"
	"github.com/kestrelrt/kestrel/pkg/renderer"
)

// NewDefaultScene builds the built-in demo scene: a diffuse and a mirror
// sphere above a triangle-quad ground, lit by two point lights.
func NewDefaultScene() *Scene {
	// Camera sits slightly above and behind the spheres, 60 degree
	// vertical fov at 16:9.
	camera := renderer.NewCamera(
		core.NewVec3(0, 1, 2),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		60, 400, 16.0/9.0)

	s := New(camera)

	red := material.NewLambertian(core.NewVec3(0.9, 0.2, 0.2))
	gray := material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6))
	mirror := material.NewConductor(core.NewVec3(0.9, 0.9, 0.95))
	s.AddMaterial("red", red)
	s.AddMaterial("gray", gray)
	s.AddMaterial("mirror", mirror)

	s.AddShape(geometry.NewSphere(core.NewVec3(-0.6, 0, -1), 0.5, red))
	s.AddShape(geometry.NewSphere(core.NewVec3(0.7, 0, -1), 0.5, mirror))

	// Ground quad at y=-0.5, built from two triangles
	g0 := core.NewVec3(-20, -0.5, -20)
	g1 := core.NewVec3(20, -0.5, -20)
	g2 := core.NewVec3(20, -0.5, 20)
	g3 := core.NewVec3(-20, -0.5, 20)
	s.AddShape(geometry.NewTriangle(g0, g1, g2, gray))
	s.AddShape(geometry.NewTriangle(g0, g2, g3, gray))

	s.AddLight(core.NewPointLight(core.NewVec3(2, 4, 1), core.NewVec3(24, 24, 22)))
	s.AddLight(core.NewPointLight(core.NewVec3(-3, 3, 2), core.NewVec3(8, 9, 12)))

	return s
}
