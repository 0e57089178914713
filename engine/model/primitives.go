package model

import (
	"github.com/Carmen-Shannon/chipview/common"
)

// boxFaces lists each face's outward normal and in-plane axes, chosen so that
// u × v = normal and the quad winds counter-clockwise seen from outside.
var boxFaces = [6]struct{ n, u, v [3]float32 }{
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// NewBox builds an axis-aligned box centred on the origin with 24 vertices
// (four per face so each face has its own normal and full 0..1 UVs) and 36
// indices.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - Model: the box mesh
func NewBox(width, height, depth float32) Model {
	half := [3]float32{width / 2, height / 2, depth / 2}
	white := [3]float32{1, 1, 1}

	vertices := make([]common.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range boxFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = (f.n[i] + f.u[i]*c[0] + f.v[i]*c[1]) * half[i]
			}
			vertices = append(vertices, common.Vertex{
				Position: p,
				Normal:   f.n,
				UV:       [2]float32{(c[0] + 1) / 2, (1 - c[1]) / 2},
				Color:    white,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewModel(WithName("box"), WithVertices(vertices), WithIndices(indices))
}

// Default grid line colors.
var (
	GridCenterColor = common.ColorFromHex(0x444444)
	GridLineColor   = common.ColorFromHex(0x888888)
)

// NewGrid builds a line grid on the XZ plane spanning size units with the
// given number of divisions per side. The two centre lines use
// GridCenterColor.
//
// Parameters:
//   - size: total side length
//   - divisions: number of cells per side (at least 1)
//
// Returns:
//   - Model: a line-list mesh with 4*(divisions+1) vertices
func NewGrid(size float32, divisions int) Model {
	divisions = max(divisions, 1)
	step := size / float32(divisions)
	half := size / 2
	center := divisions / 2

	n := divisions + 1
	vertices := make([]common.Vertex, 0, 4*n)
	for i := 0; i < n; i++ {
		k := -half + float32(i)*step
		color := GridLineColor.Array()
		if i == center && divisions%2 == 0 {
			color = GridCenterColor.Array()
		}
		vertices = append(vertices,
			common.Vertex{Position: [3]float32{-half, 0, k}, Color: color},
			common.Vertex{Position: [3]float32{half, 0, k}, Color: color},
			common.Vertex{Position: [3]float32{k, 0, -half}, Color: color},
			common.Vertex{Position: [3]float32{k, 0, half}, Color: color},
		)
	}
	return NewModel(WithName("grid"), WithVertices(vertices), WithIndices(sequence(len(vertices))))
}

// NewAxes builds three line segments from the origin along +X (red),
// +Y (green) and +Z (blue).
//
// Parameters:
//   - size: length of each axis
//
// Returns:
//   - Model: a line-list mesh with 6 vertices
func NewAxes(size float32) Model {
	red := [3]float32{1, 0, 0}
	green := [3]float32{0, 1, 0}
	blue := [3]float32{0, 0, 1}
	vertices := []common.Vertex{
		{Color: red}, {Position: [3]float32{size, 0, 0}, Color: red},
		{Color: green}, {Position: [3]float32{0, size, 0}, Color: green},
		{Color: blue}, {Position: [3]float32{0, 0, size}, Color: blue},
	}
	return NewModel(WithName("axes"), WithVertices(vertices), WithIndices(sequence(len(vertices))))
}

func sequence(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
