package format

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundTrip(t *testing.T) {
	formats := SupportedFormats()
	require.NotEmpty(t, formats)

	seen := make(map[PixelFormat]bool, len(formats))

	for _, f := range formats {
		t.Run(Name(f), func(t *testing.T) {
			assert.False(t, seen[f], "duplicate id %08x", uint32(f))
			seen[f] = true

			assert.Equal(t, f, FromName(Name(f)))
			assert.True(t, Lookup(f).IsValid())
			assert.True(t, f.IsRegistered())
			assert.Equal(t, Name(f), f.String())
		})
	}
}

func TestRegistryComponentsFitStorage(t *testing.T) {
	for _, f := range SupportedFormats() {
		layout := Lookup(f)

		for i := 0; i < layout.Planes(); i++ {
			for _, c := range layout.Plane(i).Components() {
				assert.LessOrEqual(t, c.Depth+c.Shift, 8*c.ByteDepth, "%s %s", f, c.Type)
				assert.Equal(t, layout.ByteDepth(), c.ByteDepth, "%s %s", f, c.Type)
			}
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect PixelFormat
	}{
		{"exact", "NV12", PixelFormatNV12},
		{"lower case", "yuy2", PixelFormatYUY2},
		{"padded", "  rgb24 ", PixelFormatRGB24},
		{"unknown", "MJPG", PixelFormatNone},
		{"empty", "", PixelFormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FromName(tt.input))
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	unknown := PixelFormat('M'<<24 | 'J'<<16 | 'P'<<8 | 'G')

	assert.False(t, Lookup(unknown).IsValid())
	assert.Equal(t, "none", Name(unknown))
	assert.Equal(t, "MJPG", unknown.String())
	assert.Equal(t, "none", PixelFormatNone.String())
	assert.False(t, PixelFormatNone.IsRegistered())
}

func TestSupportedNamesSorted(t *testing.T) {
	names := SupportedNames()

	assert.Len(t, names, len(SupportedFormats()))
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "P010LE")
}

func TestPackedFormats(t *testing.T) {
	argb := Lookup(PixelFormatARGBPack)
	xrgb := Lookup(PixelFormatXRGBPack)

	assert.True(t, argb.Contains(ComponentA))
	assert.False(t, xrgb.Contains(ComponentA))
	assert.True(t, argb.IsFast())

	// The packed word a<<24|r<<16|g<<8|b puts blue in the lowest address
	// on little-endian hosts.
	b, _ := argb.Component(ComponentB)
	if NativeByteOrder == LittleEndian {
		assert.Equal(t, 0, b.Offset)
	} else {
		assert.Equal(t, 3, b.Offset)
	}
}
