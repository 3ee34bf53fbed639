package inputs

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestLoadImagePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, checker(7, 3)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 7, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestLoadImageBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, checker(5, 4)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 4), img.Bounds())
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = LoadImage(junk)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestToRGBAKeepsTopRowFirst(t *testing.T) {
	src := checker(4, 2)
	rgba := toRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), rgba.Rect)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba.RGBAAt(0, 1))
	assert.Equal(t, 4*4, rgba.Stride)
}

func TestToRGBARebasesSubImage(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 8, 8))
	full.Set(2, 3, color.RGBA{G: 200, A: 255})
	sub := full.SubImage(image.Rect(2, 3, 6, 7))

	rgba := toRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 4, 4), rgba.Rect)
	assert.Equal(t, 16, rgba.Stride)
	assert.Equal(t, color.RGBA{G: 200, A: 255}, rgba.RGBAAt(0, 0))
}

func TestToRGBAReusesPackedImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	assert.Same(t, src, toRGBA(src))
}
