package imageprocessor

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegSample(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return &buf
}

func TestProcessScalesDownKeepingRatio(t *testing.T) {
	p := NewProcessor(85)

	out, contentType, err := p.Process(jpegSample(t, 1200, 600), SizeDisplay)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	decoded, _, err := image.Decode(out)
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 400, bounds.Dy())
}

func TestProcessKeepsSmallImages(t *testing.T) {
	p := NewProcessor(85)

	out, _, err := p.Process(jpegSample(t, 100, 100), SizeDisplay)

	require.NoError(t, err)
	decoded, _, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(85)

	_, _, err := p.Process(strings.NewReader("definitely not an image"), SizeThumbnail)

	assert.Error(t, err)
}
