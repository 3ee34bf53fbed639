package shader

import "github.com/go-gl/mathgl/mgl32"

// Quad is a closed four-corner shape with a texture coordinate per corner.
type Quad struct {
	Positions [4]mgl32.Vec2
	TexCoords [4]mgl32.Vec2
}

// FullScreenQuad covers clip space edge to edge and maps the texture onto it
// edge to edge. Corner order is top-left, top-right, bottom-right, bottom-left
// in the sketch's y-down convention.
func FullScreenQuad() Quad {
	return Quad{
		Positions: [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		TexCoords: [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	}
}

// VertexStride is the number of floats per vertex in Interleaved.
const VertexStride = 5

// Interleaved packs x, y, z, u, v per corner, z always 0.
func (q Quad) Interleaved() []float32 {
	out := make([]float32, 0, len(q.Positions)*VertexStride)
	for i, p := range q.Positions {
		uv := q.TexCoords[i]
		out = append(out, p.X(), p.Y(), 0, uv.X(), uv.Y())
	}
	return out
}
