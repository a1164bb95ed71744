package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithOpacity(t *testing.T) {
	c := WithOpacity(Copper, 0.5)
	assert.Equal(t, uint8(127), c.A)

	assert.Equal(t, uint8(0), WithOpacity(Copper, -1).A)
	assert.Equal(t, uint8(255), WithOpacity(Copper, 2).A)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#c85028", Hex(Copper))
	assert.Equal(t, "#000000", Hex(color.RGBA{A: 255}))
}

func TestBlend(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	assert.Equal(t, black, Blend(black, white, 0))
	assert.Equal(t, white, Blend(black, white, 1))

	mid := Blend(black, white, 0.5)
	assert.Equal(t, uint8(127), mid.R)
}
