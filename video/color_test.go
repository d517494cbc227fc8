package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorChannels(t *testing.T) {
	c := RGB(0x11, 0x22, 0x33, 0x44)

	assert.Equal(t, uint32(0x44112233), c)
	assert.Equal(t, uint8(0x11), Red(c))
	assert.Equal(t, uint8(0x22), Green(c))
	assert.Equal(t, uint8(0x33), Blue(c))
	assert.Equal(t, uint8(0x44), Alpha(c))
}

func TestGray(t *testing.T) {
	tests := []struct {
		name string
		argb uint32
		want uint8
	}{
		{"white", RGB(255, 255, 255, 255), 255},
		{"black", RGB(0, 0, 0, 255), 0},
		{"red", RGB(255, 0, 0, 255), 87},
		{"green", RGB(0, 255, 0, 255), 127},
		{"blue", RGB(0, 0, 255, 255), 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Gray(tt.argb))
		})
	}

	assert.Equal(t, RGB(87, 87, 87, 9), GrayPixel(RGB(255, 0, 0, 9)))
}
