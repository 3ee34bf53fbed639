package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waveFragment = `precision mediump float;
varying vec2 vTexCoord;
uniform sampler2D tex0;
uniform float time;
uniform vec2 resolution;
void main() {
  vec2 uv = vTexCoord;
  uv.x += sin(uv.y * 10.0 + time) * 2.0 / resolution.x;
  gl_FragColor = texture2D(tex0, uv);
}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestFullScreenQuadCorners(t *testing.T) {
	q := FullScreenQuad()
	wantPos := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	wantUV := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.Equal(t, wantPos, q.Positions)
	assert.Equal(t, wantUV, q.TexCoords)
}

func TestInterleaved(t *testing.T) {
	got := FullScreenQuad().Interleaved()
	want := []float32{
		-1, -1, 0, 0, 0,
		1, -1, 0, 1, 0,
		1, 1, 0, 1, 1,
		-1, 1, 0, 0, 1,
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, 4*VertexStride)
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	frag := writeFile(t, dir, "wave.frag", waveFragment)
	vert := writeFile(t, dir, "custom.vert", "void main() { gl_Position = vec4(0.0); }\n")

	src, err := LoadSources(vert, frag)
	require.NoError(t, err)
	assert.Equal(t, waveFragment, src.Fragment)
	assert.Contains(t, src.Vertex, "gl_Position = vec4(0.0)")
	assert.Equal(t, frag, src.FragmentPath)
}

func TestLoadSourcesDefaultVertex(t *testing.T) {
	frag := writeFile(t, t.TempDir(), "wave.frag", waveFragment)

	src, err := LoadSources("", frag)
	require.NoError(t, err)
	assert.Equal(t, PassthroughVertex(), src.Vertex)
	assert.Contains(t, src.Vertex, PositionAttribute)
	assert.Contains(t, src.Vertex, TexCoordAttribute)
}

func TestLoadSourcesMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadSources("", filepath.Join(dir, "nope.frag"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	frag := writeFile(t, dir, "wave.frag", waveFragment)
	_, err = LoadSources(filepath.Join(dir, "nope.vert"), frag)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStageMapped(t *testing.T) {
	s := Stage{Names: map[string]string{"time": "_utime", "empty": ""}}
	assert.Equal(t, "_utime", s.Mapped("time"))
	assert.Equal(t, "resolution", s.Mapped("resolution"))
	assert.Equal(t, "empty", s.Mapped("empty"))

	tr := &Translated{
		Vertex:   Stage{Names: map[string]string{"aPosition": "_uaPosition"}},
		Fragment: Stage{Names: map[string]string{"tex0": "_utex0"}},
	}
	assert.Equal(t, "_utex0", tr.Mapped("tex0"))
	assert.Equal(t, "_uaPosition", tr.Mapped("aPosition"))
}

func TestTranslate(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the wasm shader translator")
	}
	src := &Sources{Vertex: PassthroughVertex(), Fragment: waveFragment}
	tr, err := Translate(src)
	require.NoError(t, err)
	assert.NotEmpty(t, tr.Vertex.Code)
	assert.NotEmpty(t, tr.Fragment.Code)
	assert.Contains(t, tr.Fragment.Names, TimeUniform)
	assert.Contains(t, tr.Fragment.Names, ResolutionUniform)
}
