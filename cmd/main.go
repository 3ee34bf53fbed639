package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"runtime"

	"github.com/richinsley/goshadersketch/glfwcontext"
	"github.com/richinsley/goshadersketch/graphics"
	inputs "github.com/richinsley/goshadersketch/inputs"
	options "github.com/richinsley/goshadersketch/options"
	recorder "github.com/richinsley/goshadersketch/recorder"
	renderer "github.com/richinsley/goshadersketch/renderer"
	shader "github.com/richinsley/goshadersketch/shader"
	sketch "github.com/richinsley/goshadersketch/sketch"
)

func newBackend(opts *options.ShaderOptions) sketch.Backend {
	sampler := inputs.Sampler{Filter: *opts.Filter, Wrap: *opts.Wrap}
	title := filepath.Base(*opts.ImagePath)

	return sketch.Backend{
		NewCanvas: func(width, height int) (graphics.Context, error) {
			ctx, err := glfwcontext.New(width, height, title, !opts.IsRecord())
			if err != nil {
				return nil, fmt.Errorf("failed to initialize glfw context: %w", err)
			}
			if err := renderer.InitGL(); err != nil {
				ctx.Shutdown()
				return nil, err
			}
			return ctx, nil
		},
		NewTexture: func(img image.Image) (inputs.Texture, error) {
			tex, err := inputs.NewImageTexture(img, sampler)
			if err != nil {
				return nil, err
			}
			return tex, nil
		},
		NewProgram: func(src *shader.Sources) (sketch.Program, error) {
			prog, err := renderer.NewProgram(src)
			if err != nil {
				return nil, err
			}
			return prog, nil
		},
	}
}

func runRecord(s *sketch.Sketch, opts *options.ShaderOptions) error {
	width, height := s.Canvas().GetSize()
	offscreen, err := renderer.NewOffscreen(width, height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer offscreen.Destroy()

	rec, err := recorder.New(recorder.Config{
		Width:      width,
		Height:     height,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		Codec:      *opts.Codec,
		FFMPEGPath: *opts.FFMPEGPath,
	})
	if err != nil {
		return err
	}

	renderErr := s.Record(offscreen, rec, *opts.Duration, *opts.FPS)
	closeErr := rec.Close()
	if renderErr != nil {
		return renderErr
	}
	return closeErr
}

func runSketch(opts *options.ShaderOptions) error {
	s := sketch.New(newBackend(opts))
	if err := s.Preload(*opts.ImagePath, *opts.VertexPath, *opts.FragmentPath); err != nil {
		return err
	}
	if err := s.Setup(); err != nil {
		return err
	}
	defer s.Shutdown()

	if opts.IsRecord() {
		log.Println("Starting offscreen render loop...")
		if err := runRecord(s, opts); err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}
	return s.Run()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.ShaderOptions{
		ImagePath:    flag.String("image", "assets/claudia.jpg", "Image to display"),
		VertexPath:   flag.String("vert", "", "Vertex shader (built-in pass-through if empty)"),
		FragmentPath: flag.String("frag", "shader7.frag", "Fragment shader"),
		Filter:       flag.String("filter", "linear", "Texture filter: linear, nearest or mipmap"),
		Wrap:         flag.String("wrap", "clamp", "Texture wrap: clamp or repeat"),
		Help:         flag.Bool("help", false, "Show help message"),
		Mode:         flag.String("mode", options.ModeWindow, "Mode: window or record"),
		Duration:     flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:          flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile:   flag.String("output", "output.mp4", "Output file name for recording"),
		Codec:        flag.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		FFMPEGPath:   flag.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Image shader sketch viewer/recorder")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	if err := runSketch(opts); err != nil {
		log.Fatalf("Sketch failed: %v", err)
	}
}
