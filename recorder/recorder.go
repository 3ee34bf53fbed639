package recorder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// numBuffers bounds how many frames may wait for the encoder.
const numBuffers = 3

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Config describes the raw input and the encoded output.
type Config struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	Codec      string // h264 or hevc
	FFMPEGPath string
}

func (c Config) frameSize() int {
	return c.Width * c.Height * 4
}

// Recorder streams RGBA frames, bottom row first, into an ffmpeg process.
type Recorder struct {
	frameChan chan *Frame
	doneChan  chan error
	frameSize int
	next      int64
	closed    bool
}

// New starts ffmpeg and the goroutine that feeds it.
func New(cfg Config) (*Recorder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid recording geometry %dx%d@%d", cfg.Width, cfg.Height, cfg.FPS)
	}
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(cfg, runtime.GOOS)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(cfg.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if cfg.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(cfg.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(errors.New("ffmpeg exited"))
		errc <- err
	}()

	log.Printf("Recording %dx%d at %d fps to %s", cfg.Width, cfg.Height, cfg.FPS, cfg.OutputFile)
	return start(pipeWriter, errc, cfg.frameSize()), nil
}

// start runs the consumer writing frames to sink. processErr delivers the
// encoder process result once sink is closed.
func start(sink io.WriteCloser, processErr <-chan error, frameSize int) *Recorder {
	r := &Recorder{
		frameChan: make(chan *Frame, numBuffers),
		doneChan:  make(chan error, 1),
		frameSize: frameSize,
	}
	go r.runEncoder(sink, processErr)
	return r
}

// runEncoder is the consumer. It drains frameChan into sink.
func (r *Recorder) runEncoder(sink io.WriteCloser, processErr <-chan error) {
	var writeErr error
	for frame := range r.frameChan {
		if writeErr != nil {
			continue
		}
		if _, err := sink.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	sink.Close()
	procErr := <-processErr
	if procErr != nil {
		r.doneChan <- fmt.Errorf("ffmpeg failed: %w", procErr)
		return
	}
	r.doneChan <- writeErr
}

// SendVideo queues a copy of pixels. It blocks while the queue is full.
func (r *Recorder) SendVideo(pixels []byte) error {
	if r.closed {
		return errors.New("recorder is closed")
	}
	if len(pixels) != r.frameSize {
		return fmt.Errorf("frame has %d bytes, want %d", len(pixels), r.frameSize)
	}
	buf := make([]byte, len(pixels))
	copy(buf, pixels)
	r.frameChan <- &Frame{Pixels: buf, PTS: r.next}
	r.next++
	return nil
}

// Frames returns how many frames were queued.
func (r *Recorder) Frames() int64 {
	return r.next
}

// Close flushes the queue and waits for the encoder to finish.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.frameChan)
	return <-r.doneChan
}

func getArgs(cfg Config, goos string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": cfg.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		// glReadPixels delivers rows bottom-up; yuv420p needs even dimensions.
		"vf":      "vflip,pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"pix_fmt": "yuv420p",
	}

	switch goos {
	case "darwin":
		if cfg.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
		outputArgs["b:v"] = "25M"
	default:
		if cfg.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
		outputArgs["crf"] = 18
	}

	if cfg.Codec == "hevc" && strings.EqualFold(filepath.Ext(cfg.OutputFile), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}
