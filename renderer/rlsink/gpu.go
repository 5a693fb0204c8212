package rlsink

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
	"github.com/pthm-cable/rovers/renderer"
)

// Positions arrive already in NDC with y growing downwards like the arena,
// so the vertex stage only flips y.
const cellVertexShader = `#version 330
in vec3 vertexPosition;
in vec4 vertexColor;
out vec4 fragColor;
void main() {
    fragColor = vertexColor;
    gl_Position = vec4(vertexPosition.x, -vertexPosition.y, 0.0, 1.0);
}
`

const cellFragmentShader = `#version 330
in vec4 fragColor;
out vec4 finalColor;
void main() {
    finalColor = fragColor;
}
`

// GPUSink collects a tick's cells into a renderer.TriangleBuffer and
// submits it once on Flush under a pass-through shader pair.
type GPUSink struct {
	shader rl.Shader
	buf    *renderer.TriangleBuffer
}

// NewGPUSink compiles the cell shaders. Must be called after the raylib window
// is created. The error wraps renderer.ErrShaderInit when compilation fails.
func NewGPUSink(width, height float64) (*GPUSink, error) {
	shader := rl.LoadShaderFromMemory(cellVertexShader, cellFragmentShader)
	if !rl.IsShaderValid(shader) || shader.ID == rl.GetShaderIdDefault() {
		return nil, fmt.Errorf("cell shaders: %w", renderer.ErrShaderInit)
	}
	rl.DisableBackfaceCulling()
	return &GPUSink{
		shader: shader,
		buf:    renderer.NewTriangleBuffer(width, height),
	}, nil
}

// FillPolygon implements renderer.Sink.
func (s *GPUSink) FillPolygon(poly []geom.Vec, c palette.Color) {
	s.buf.AddFan(poly, c)
}

// Flush implements renderer.Sink.
func (s *GPUSink) Flush() {
	rl.BeginShaderMode(s.shader)
	pos, col := s.buf.Positions, s.buf.Colors
	for v := 0; v+3 <= s.buf.Vertices(); v += 3 {
		rl.CheckRenderBatchLimit(3)
		rl.Begin(rl.Triangles)
		for k := v; k < v+3; k++ {
			rl.Color4ub(col[4*k], col[4*k+1], col[4*k+2], col[4*k+3])
			rl.Vertex2f(pos[2*k], pos[2*k+1])
		}
		rl.End()
	}
	rl.EndShaderMode()
	s.buf.Reset()
}

// Resize implements renderer.Resizer.
func (s *GPUSink) Resize(width, height float64) {
	s.buf.Resize(width, height)
}

// Unload frees the shader.
func (s *GPUSink) Unload() {
	rl.UnloadShader(s.shader)
}
