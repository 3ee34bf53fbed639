package inputs

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestSamplerModes(t *testing.T) {
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), getWrapMode(DefaultSampler.Wrap))
	assert.Equal(t, int32(gl.REPEAT), getWrapMode("repeat"))
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), getWrapMode(""))

	minFilter, magFilter := getFilterMode(DefaultSampler.Filter)
	assert.Equal(t, int32(gl.LINEAR), minFilter)
	assert.Equal(t, int32(gl.LINEAR), magFilter)

	minFilter, magFilter = getFilterMode("nearest")
	assert.Equal(t, int32(gl.NEAREST), minFilter)
	assert.Equal(t, int32(gl.NEAREST), magFilter)

	minFilter, magFilter = getFilterMode("mipmap")
	assert.Equal(t, int32(gl.LINEAR_MIPMAP_LINEAR), minFilter)
	assert.Equal(t, int32(gl.LINEAR), magFilter)
}
