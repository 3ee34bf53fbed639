package options

import (
	"errors"
	"fmt"
)

const (
	ModeWindow = "window"
	ModeRecord = "record"
)

type ShaderOptions struct {
	ImagePath    *string
	VertexPath   *string // empty selects the built-in pass-through vertex shader
	FragmentPath *string
	Filter       *string // texture filter: linear, nearest or mipmap
	Wrap         *string // texture wrap: clamp or repeat
	Help         *bool
	Mode         *string
	// Record options
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
}

// Validate checks option values before any resource is loaded.
func (o *ShaderOptions) Validate() error {
	if o.FragmentPath == nil || *o.FragmentPath == "" {
		return errors.New("a fragment shader path is required")
	}
	if o.ImagePath == nil || *o.ImagePath == "" {
		return errors.New("an image path is required")
	}
	if o.Filter != nil {
		switch *o.Filter {
		case "linear", "nearest", "mipmap":
		default:
			return fmt.Errorf("unknown texture filter %q", *o.Filter)
		}
	}
	if o.Wrap != nil {
		switch *o.Wrap {
		case "clamp", "repeat":
		default:
			return fmt.Errorf("unknown texture wrap %q", *o.Wrap)
		}
	}

	mode := ModeWindow
	if o.Mode != nil && *o.Mode != "" {
		mode = *o.Mode
	}
	switch mode {
	case ModeWindow:
		return nil
	case ModeRecord:
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	if o.Duration == nil || *o.Duration <= 0 {
		return errors.New("record mode needs a positive duration")
	}
	if o.FPS == nil || *o.FPS <= 0 {
		return errors.New("record mode needs a positive fps")
	}
	if o.OutputFile == nil || *o.OutputFile == "" {
		return errors.New("record mode needs an output file")
	}
	if o.Codec != nil {
		switch *o.Codec {
		case "h264", "hevc":
		default:
			return fmt.Errorf("unknown codec %q", *o.Codec)
		}
	}
	return nil
}

// IsRecord reports whether frames go to a video file instead of a window.
func (o *ShaderOptions) IsRecord() bool {
	return o.Mode != nil && *o.Mode == ModeRecord
}
