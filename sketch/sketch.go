// Package sketch drives the load-once, draw-every-frame cycle: an image is
// shown full-canvas through a shader that is fed the image, the elapsed time
// and the canvas resolution.
package sketch

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshadersketch/graphics"
	"github.com/richinsley/goshadersketch/inputs"
	"github.com/richinsley/goshadersketch/shader"
)

var (
	ErrNotLoaded    = errors.New("sketch: image and shader must be loaded before setup")
	ErrAlreadySetup = errors.New("sketch: setup already ran")
	ErrNotSetup     = errors.New("sketch: setup has not run")
)

// Program is a compiled shader program that draws quads.
type Program interface {
	SetTexture(name string, tex inputs.Texture)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	DrawQuad(q shader.Quad, viewportWidth, viewportHeight int)
	Destroy()
}

// Backend creates the graphics resources a sketch needs. NewCanvas is
// called first and leaves its context current for the other two.
type Backend struct {
	NewCanvas  func(width, height int) (graphics.Context, error)
	NewTexture func(img image.Image) (inputs.Texture, error)
	NewProgram func(src *shader.Sources) (Program, error)
}

// Capture is a render target whose pixels can be read back after a frame.
type Capture interface {
	Size() (int, int)
	Begin()
	End() ([]byte, error)
}

// Encoder consumes captured frames.
type Encoder interface {
	SendVideo(pixels []byte) error
}

type Sketch struct {
	backend Backend
	image   image.Image
	sources *shader.Sources
	canvas  graphics.Context
	texture inputs.Texture
	program Program
	clock   *Clock
	quad    shader.Quad
	frames  int64
}

func New(backend Backend) *Sketch {
	return &Sketch{
		backend: backend,
		quad:    shader.FullScreenQuad(),
	}
}

// Preload decodes the image and reads the shader sources.
func (s *Sketch) Preload(imagePath, vertexPath, fragmentPath string) error {
	img, err := inputs.LoadImage(imagePath)
	if err != nil {
		return err
	}
	sources, err := shader.LoadSources(vertexPath, fragmentPath)
	if err != nil {
		return err
	}
	s.image = img
	s.sources = sources
	return nil
}

// Setup creates the canvas at the image's size, uploads the image, compiles
// the program and starts the clock.
func (s *Sketch) Setup() error {
	if s.image == nil || s.sources == nil {
		return ErrNotLoaded
	}
	if s.canvas != nil {
		return ErrAlreadySetup
	}

	b := s.image.Bounds()
	canvas, err := s.backend.NewCanvas(b.Dx(), b.Dy())
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}
	s.canvas = canvas

	s.texture, err = s.backend.NewTexture(s.image)
	if err != nil {
		return fmt.Errorf("failed to create image texture: %w", err)
	}
	s.program, err = s.backend.NewProgram(s.sources)
	if err != nil {
		return fmt.Errorf("failed to build shader program: %w", err)
	}
	s.program.SetTexture(shader.TextureUniform, s.texture)

	s.clock = NewClock(canvas.Time)
	s.clock.Start()
	return nil
}

// Draw renders one frame to the canvas.
func (s *Sketch) Draw() error {
	if s.program == nil {
		return ErrNotSetup
	}
	fbWidth, fbHeight := s.canvas.GetFramebufferSize()
	s.drawAt(s.clock.Elapsed(), fbWidth, fbHeight)
	return nil
}

func (s *Sketch) drawAt(seconds float64, viewportWidth, viewportHeight int) {
	width, height := s.canvas.GetSize()
	s.program.SetFloat(shader.TimeUniform, float32(seconds))
	s.program.SetVec2(shader.ResolutionUniform, mgl32.Vec2{float32(width), float32(height)})
	s.program.SetTexture(shader.TextureUniform, s.texture)
	s.program.DrawQuad(s.quad, viewportWidth, viewportHeight)
	s.frames++
}

// Run draws and presents frames until the canvas is asked to close.
func (s *Sketch) Run() error {
	if s.program == nil {
		return ErrNotSetup
	}
	log.Println("Starting interactive render loop...")
	for !s.canvas.ShouldClose() {
		if err := s.Draw(); err != nil {
			return err
		}
		s.canvas.EndFrame()
	}
	return nil
}

// Record renders duration seconds at a fixed frame rate into capture and
// hands every frame to enc. Frame i sees time i/fps.
func (s *Sketch) Record(capture Capture, enc Encoder, duration float64, fps int) error {
	if s.program == nil {
		return ErrNotSetup
	}
	if fps <= 0 || duration <= 0 {
		return fmt.Errorf("invalid recording length %gs at %d fps", duration, fps)
	}

	totalFrames := int(duration * float64(fps))
	timeStep := 1.0 / float64(fps)
	width, height := capture.Size()
	log.Printf("Rendering %d frames offscreen...", totalFrames)

	for i := 0; i < totalFrames; i++ {
		capture.Begin()
		s.drawAt(float64(i)*timeStep, width, height)
		pixels, err := capture.End()
		if err != nil {
			return fmt.Errorf("error reading pixels on frame %d: %w", i, err)
		}
		if err := enc.SendVideo(pixels); err != nil {
			return fmt.Errorf("error encoding frame %d: %w", i, err)
		}
		if (i+1)%fps == 0 {
			log.Printf("Rendered %d/%d frames", i+1, totalFrames)
		}
	}
	return nil
}

// Canvas returns the canvas created by Setup, or nil.
func (s *Sketch) Canvas() graphics.Context {
	return s.canvas
}

// Frames returns how many frames have been drawn.
func (s *Sketch) Frames() int64 {
	return s.frames
}

// Shutdown releases everything Setup created.
func (s *Sketch) Shutdown() {
	if s.program != nil {
		s.program.Destroy()
		s.program = nil
	}
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.canvas != nil {
		s.canvas.Shutdown()
		s.canvas = nil
	}
}
