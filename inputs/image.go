package inputs

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	b := img.Bounds()
	log.Printf("Loaded %s image %s (%dx%d)", format, path, b.Dx(), b.Dy())
	return img, nil
}

// toRGBA converts img to a tightly packed RGBA image anchored at the origin,
// top row first.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// ImageTexture represents a static image uploaded as a 2D texture.
type ImageTexture struct {
	textureID uint32
	width     int
	height    int
	sampler   Sampler
}

// NewImageTexture uploads img. Rows are uploaded top row first, so texture
// coordinate v=0 addresses the top of the image.
func NewImageTexture(img image.Image, sampler Sampler) (*ImageTexture, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	rgba := toRGBA(img)
	width := int32(rgba.Rect.Dx())
	height := int32(rgba.Rect.Dy())
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("input image is empty (%dx%d)", width, height)
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, getWrapMode(sampler.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, getWrapMode(sampler.Wrap))

	minFilter, magFilter := getFilterMode(sampler.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	// Rows are tightly packed but widths need not be a multiple of 4 texels.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if sampler.Filter == "mipmap" {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &ImageTexture{
		textureID: textureID,
		width:     int(width),
		height:    int(height),
		sampler:   sampler,
	}, nil
}

// --- Texture Interface Implementation ---

func (c *ImageTexture) GetTextureID() uint32 {
	return c.textureID
}

func (c *ImageTexture) Size() (int, int) {
	return c.width, c.height
}

func (c *ImageTexture) GetSamplerType() string {
	return "sampler2D"
}

func (c *ImageTexture) Destroy() {
	gl.DeleteTextures(1, &c.textureID)
}
