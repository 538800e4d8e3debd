package gridimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceCache(t *testing.T) {
	fc := newFaceCache(2)

	f10, err := fc.face(10)
	require.NoError(t, err)
	_, err = fc.face(12)
	require.NoError(t, err)

	// quantized sizes share a face
	again, err := fc.face(10.05)
	require.NoError(t, err)
	assert.Same(t, f10, again)
	assert.Equal(t, 2, fc.len())

	// 12 is now least recently used
	_, err = fc.face(14)
	require.NoError(t, err)
	assert.Equal(t, 2, fc.len())
	assert.Contains(t, fc.faces, 10.0)
	assert.Contains(t, fc.faces, 14.0)
	assert.NotContains(t, fc.faces, 12.0)
}

func TestFaceCacheMinimumSize(t *testing.T) {
	fc := newFaceCache(0)
	assert.Equal(t, DefaultFaceCacheSize, fc.maxSize)

	_, err := fc.face(0.01)
	require.NoError(t, err)
	assert.Contains(t, fc.faces, minFontSize)
}
