package shader

import (
	_ "embed"
	"fmt"
	"os"

	xlate "github.com/richinsley/goshadersketch/translator"
	gst "github.com/richinsley/goshadertranslator"
)

// Names of the inputs a sketch program is fed.
const (
	TextureUniform    = "tex0"
	TimeUniform       = "time"
	ResolutionUniform = "resolution"

	PositionAttribute = "aPosition"
	TexCoordAttribute = "aTexCoord"
)

// MatrixUniforms are the transforms stock sketch vertex shaders multiply by.
// They are set to identity so the quad reaches clip space unchanged.
var MatrixUniforms = []string{"uProjectionMatrix", "uModelViewMatrix", "uNormalMatrix"}

//go:embed glsl/passthrough.vert
var passthroughVertex string

// Sources holds the untranslated vertex and fragment source of a program.
type Sources struct {
	VertexPath   string
	FragmentPath string
	Vertex       string
	Fragment     string
}

// LoadSources reads a vertex/fragment pair. An empty vertexPath selects the
// built-in pass-through vertex shader.
func LoadSources(vertexPath, fragmentPath string) (*Sources, error) {
	src := &Sources{
		VertexPath:   vertexPath,
		FragmentPath: fragmentPath,
		Vertex:       passthroughVertex,
	}
	if vertexPath != "" {
		b, err := os.ReadFile(vertexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read vertex shader: %w", err)
		}
		src.Vertex = string(b)
	}
	b, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment shader: %w", err)
	}
	src.Fragment = string(b)
	return src, nil
}

// PassthroughVertex returns the built-in vertex shader source.
func PassthroughVertex() string {
	return passthroughVertex
}

// Stage is one translated shader stage.
type Stage struct {
	Code string
	// Names maps identifiers in the original source to their translated names.
	Names map[string]string
}

// Mapped returns the translated name of a uniform or attribute, or name
// itself when the translator reported no mapping.
func (s Stage) Mapped(name string) string {
	if m, ok := s.Names[name]; ok && m != "" {
		return m
	}
	return name
}

// Translated is a program ready to be compiled by desktop OpenGL.
type Translated struct {
	Vertex   Stage
	Fragment Stage
}

// Mapped looks a name up in the fragment stage first, then the vertex stage.
func (t *Translated) Mapped(name string) string {
	if m, ok := t.Fragment.Names[name]; ok && m != "" {
		return m
	}
	return t.Vertex.Mapped(name)
}

// Translate converts WebGL shading language (ESSL 1.00 or 3.00) into GLSL 4.10.
func Translate(src *Sources) (*Translated, error) {
	translator, err := xlate.GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}

	vs, err := translator.TranslateShader(src.Vertex, "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := translator.TranslateShader(src.Fragment, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	t := &Translated{
		Vertex:   Stage{Code: vs.Code, Names: make(map[string]string, len(vs.Variables))},
		Fragment: Stage{Code: fs.Code, Names: make(map[string]string, len(fs.Variables))},
	}
	for name, v := range vs.Variables {
		t.Vertex.Names[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		t.Fragment.Names[name] = v.MappedName
	}
	return t, nil
}
