package loaders

import (
	"fmt"

	"github.com/udhos/gwob"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// LoadOBJ loads a Wavefront OBJ file. Only vertex positions and triangle
// indices are read; material libraries are ignored because scene
// descriptions assign materials by bsdf reference.
func LoadOBJ(filename string, logger core.Logger) (*MeshData, error) {
	options := &gwob.ObjParserOptions{}
	if logger != nil {
		options.Logger = func(msg string) { logger.Printf("%s", msg) }
	}

	obj, err := gwob.NewObjFromFile(filename, options)
	if err != nil {
		return nil, fmt.Errorf("parse OBJ file: %w", err)
	}

	// Coord is an interleaved float32 buffer; the stride fields are in
	// bytes, hence the /4.
	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4
	if stride <= 0 {
		return nil, fmt.Errorf("OBJ file %s has no vertex data", filename)
	}

	vertexCount := len(obj.Coord) / stride
	data := &MeshData{
		Vertices: make([]core.Vec3, 0, vertexCount),
		Faces:    make([]int, len(obj.Indices)),
	}
	for i := 0; i < vertexCount; i++ {
		base := i*stride + offset
		data.Vertices = append(data.Vertices, core.NewVec3(
			float64(obj.Coord[base]),
			float64(obj.Coord[base+1]),
			float64(obj.Coord[base+2]),
		))
	}
	copy(data.Faces, obj.Indices)

	return data, nil
}
