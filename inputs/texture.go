package inputs

// Texture is a GPU image a program samples from.
type Texture interface {
	// GetTextureID returns the OpenGL texture ID that should be bound.
	GetTextureID() uint32

	// Size returns the texture dimensions in texels.
	Size() (int, int)

	// GetSamplerType returns the GLSL sampler type (e.g., "sampler2D").
	GetSamplerType() string

	// Destroy releases the GPU memory held by the texture.
	Destroy()
}

// Sampler selects how a texture is filtered and wrapped.
type Sampler struct {
	Filter string // linear, nearest or mipmap
	Wrap   string // clamp or repeat
}

// DefaultSampler matches what a WebGL sketch runtime uses for loaded images.
var DefaultSampler = Sampler{Filter: "linear", Wrap: "clamp"}
