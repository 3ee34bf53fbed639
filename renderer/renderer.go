package renderer

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	inputs "github.com/richinsley/goshadersketch/inputs"
	shader "github.com/richinsley/goshadersketch/shader"
)

var glInitOnce sync.Once
var glInitErr error

// InitGL loads the OpenGL function pointers. The canvas context must be current.
func InitGL() error {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
		if glInitErr == nil {
			log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
		}
	})
	if glInitErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return nil
}

// Program is a linked shader program plus the vertex array its quad is drawn from.
type Program struct {
	shaderProgram uint32
	quadVAO       uint32
	quadVBO       uint32
	names         *shader.Translated
	locations     map[string]int32
	textureUnits  map[string]int32
}

// NewProgram translates and links src. The canvas context must be current.
func NewProgram(src *shader.Sources) (*Program, error) {
	translated, err := shader.Translate(src)
	if err != nil {
		return nil, err
	}

	prog, err := newProgram(translated.Vertex.Code, translated.Fragment.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	p := &Program{
		shaderProgram: prog,
		names:         translated,
		locations:     make(map[string]int32),
		textureUnits:  make(map[string]int32),
	}
	if err := p.initQuad(); err != nil {
		gl.DeleteProgram(prog)
		return nil, err
	}

	gl.UseProgram(p.shaderProgram)
	identity := mgl32.Ident4()
	for _, name := range shader.MatrixUniforms {
		if loc := p.uniformLocation(name); loc != -1 {
			if name == "uNormalMatrix" {
				m := mgl32.Ident3()
				gl.UniformMatrix3fv(loc, 1, false, &m[0])
				continue
			}
			gl.UniformMatrix4fv(loc, 1, false, &identity[0])
		}
	}
	return p, nil
}

func (p *Program) initQuad() error {
	posLoc := gl.GetAttribLocation(p.shaderProgram, gl.Str(p.names.Vertex.Mapped(shader.PositionAttribute)+"\x00"))
	if posLoc < 0 {
		return fmt.Errorf("vertex shader has no active %s attribute", shader.PositionAttribute)
	}
	texLoc := gl.GetAttribLocation(p.shaderProgram, gl.Str(p.names.Vertex.Mapped(shader.TexCoordAttribute)+"\x00"))

	vertices := shader.FullScreenQuad().Interleaved()
	stride := int32(shader.VertexStride * 4)

	gl.GenVertexArrays(1, &p.quadVAO)
	gl.GenBuffers(1, &p.quadVBO)
	gl.BindVertexArray(p.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(uint32(posLoc))
	gl.VertexAttribPointer(uint32(posLoc), 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	if texLoc >= 0 {
		gl.EnableVertexAttribArray(uint32(texLoc))
		gl.VertexAttribPointer(uint32(texLoc), 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

// uniformLocation resolves name through the translator's name map and caches
// the result. Inactive uniforms resolve to -1 and are logged once.
func (p *Program) uniformLocation(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.shaderProgram, gl.Str(p.names.Mapped(name)+"\x00"))
	if loc == -1 {
		log.Printf("Uniform %q is not active in the program, ignoring", name)
	}
	p.locations[name] = loc
	return loc
}

// SetTexture binds tex to the sampler uniform name. Each sampler name keeps
// the texture unit it was first given.
func (p *Program) SetTexture(name string, tex inputs.Texture) {
	unit, ok := p.textureUnits[name]
	if !ok {
		unit = int32(len(p.textureUnits))
		p.textureUnits[name] = unit
	}
	gl.UseProgram(p.shaderProgram)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex.GetTextureID())
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform1i(loc, unit)
	}
}

func (p *Program) SetFloat(name string, v float32) {
	gl.UseProgram(p.shaderProgram)
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.UseProgram(p.shaderProgram)
	if loc := p.uniformLocation(name); loc != -1 {
		gl.Uniform2f(loc, v.X(), v.Y())
	}
}

// DrawQuad uploads q and draws it as a closed fan over a viewport of the given size.
func (p *Program) DrawQuad(q shader.Quad, width, height int) {
	vertices := q.Interleaved()

	gl.UseProgram(p.shaderProgram)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(p.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.quadVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(len(q.Positions)))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (p *Program) Destroy() {
	gl.DeleteBuffers(1, &p.quadVBO)
	gl.DeleteVertexArrays(1, &p.quadVAO)
	gl.DeleteProgram(p.shaderProgram)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
