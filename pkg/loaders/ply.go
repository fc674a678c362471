package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kestrelrt/kestrel/pkg/core"
)

// MeshData is the raw vertex and face data loaded from a mesh file.
// Faces hold three vertex indices per triangle.
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int
}

// LoadPLY loads an ASCII PLY file. Only vertex positions and face index
// lists are read; extra per-vertex properties are ignored. Faces with
// more than three vertices are fan-triangulated.
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open PLY file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	vertexCount, faceCount, err := parsePLYHeader(scanner)
	if err != nil {
		return nil, fmt.Errorf("parse PLY header in %s: %w", filename, err)
	}

	data := &MeshData{
		Vertices: make([]core.Vec3, 0, vertexCount),
		Faces:    make([]int, 0, faceCount*3),
	}

	for i := 0; i < vertexCount; i++ {
		fields, err := nextFields(scanner)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("vertex %d: want at least 3 coordinates, got %d", i, len(fields))
		}
		var coords [3]float64
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: bad coordinate %q", i, fields[k])
			}
			coords[k] = v
		}
		data.Vertices = append(data.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	for i := 0; i < faceCount; i++ {
		fields, err := nextFields(scanner)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		indices, err := parseFaceIndices(fields)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		for _, idx := range indices {
			if idx < 0 || idx >= len(data.Vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, idx, len(data.Vertices))
			}
		}
		// Fan-triangulate polygons with more than three vertices
		for k := 2; k < len(indices); k++ {
			data.Faces = append(data.Faces, indices[0], indices[k-1], indices[k])
		}
	}

	return data, nil
}

// parsePLYHeader reads lines through end_header and returns the declared
// vertex and face counts.
func parsePLYHeader(scanner *bufio.Scanner) (vertexCount, faceCount int, err error) {
	sawMagic := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case !sawMagic:
			if line != "ply" {
				return 0, 0, fmt.Errorf("not a PLY file, first line is %q", line)
			}
			sawMagic = true
		case strings.HasPrefix(line, "format"):
			if !strings.Contains(line, "ascii") {
				return 0, 0, fmt.Errorf("unsupported PLY format %q, only ascii is supported", line)
			}
		case strings.HasPrefix(line, "element vertex"):
			if _, err := fmt.Sscanf(line, "element vertex %d", &vertexCount); err != nil {
				return 0, 0, fmt.Errorf("bad vertex element line %q", line)
			}
		case strings.HasPrefix(line, "element face"):
			if _, err := fmt.Sscanf(line, "element face %d", &faceCount); err != nil {
				return 0, 0, fmt.Errorf("bad face element line %q", line)
			}
		case line == "end_header":
			return vertexCount, faceCount, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}
	return 0, 0, fmt.Errorf("missing end_header")
}

// nextFields returns the whitespace-separated fields of the next
// non-empty line.
func nextFields(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of file")
}

// parseFaceIndices parses a face line: a vertex count followed by that
// many vertex indices.
func parseFaceIndices(fields []string) ([]int, error) {
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("bad vertex count %q", fields[0])
	}
	if count < 3 {
		return nil, fmt.Errorf("face has %d vertices, want at least 3", count)
	}
	if len(fields) < count+1 {
		return nil, fmt.Errorf("face declares %d vertices but has %d fields", count, len(fields)-1)
	}

	indices := make([]int, count)
	for i := 0; i < count; i++ {
		idx, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("bad vertex index %q", fields[i+1])
		}
		indices[i] = idx
	}
	return indices, nil
}
