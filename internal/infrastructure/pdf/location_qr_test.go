package pdf

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationQR_FondoRojo(t *testing.T) {
	data, err := NewMarotoLabelGenerator().locationQR("A-B-53-004")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, locationQRPixels, b.Dx())

	black, red := color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}
	counts := map[color.RGBA]int{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)]++
		}
	}
	assert.Len(t, counts, 2, "solo módulos negros sobre fondo rojo")
	assert.Positive(t, counts[black])
	assert.Positive(t, counts[red])
}
