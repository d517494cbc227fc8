package format

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// PixelFormat is an opaque FourCC style identifier of a registered layout.
type PixelFormat uint32

// Registered pixel formats.
const (
	PixelFormatNone PixelFormat = 0

	PixelFormatXRGB     PixelFormat = 'X'<<24 | 'R'<<16 | 'G'<<8 | 'B'
	PixelFormatRGB24    PixelFormat = 'R'<<24 | 'G'<<16 | 'B'<<8 | '3'
	PixelFormatRGB565BE PixelFormat = 'R'<<24 | 'G'<<16 | 'B'<<8 | 'R'
	PixelFormatRGB565LE PixelFormat = 'R'<<24 | 'G'<<16 | 'B'<<8 | 'P'
	PixelFormatRGB555BE PixelFormat = 'R'<<24 | 'G'<<16 | 'B'<<8 | 'Q'
	PixelFormatRGB555LE PixelFormat = 'R'<<24 | 'G'<<16 | 'B'<<8 | 'O'
	PixelFormatARGB     PixelFormat = 'A'<<24 | 'R'<<16 | 'G'<<8 | 'B'
	PixelFormatBGRX     PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'X'
	PixelFormatBGR24    PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | '3'
	PixelFormatBGR565BE PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'R'
	PixelFormatBGR565LE PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'P'
	PixelFormatBGR555BE PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'Q'
	PixelFormatBGR555LE PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'O'
	PixelFormatBGRA     PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'A'
	PixelFormatRGB48LE  PixelFormat = 'R'<<24 | '4'<<16 | '8'<<8 | 'L'
	PixelFormatRGB48BE  PixelFormat = 'R'<<24 | '4'<<16 | '8'<<8 | 'B'
	PixelFormatARGB64LE PixelFormat = 'A'<<24 | '6'<<16 | '4'<<8 | 'L'

	PixelFormatUYVY    PixelFormat = 'U'<<24 | 'Y'<<16 | 'V'<<8 | 'Y'
	PixelFormatYUY2    PixelFormat = 'Y'<<24 | 'U'<<16 | 'Y'<<8 | '2'
	PixelFormatNV12    PixelFormat = 'N'<<24 | 'V'<<16 | '1'<<8 | '2'
	PixelFormatNV21    PixelFormat = 'N'<<24 | 'V'<<16 | '2'<<8 | '1'
	PixelFormatI420    PixelFormat = 'I'<<24 | '4'<<16 | '2'<<8 | '0'
	PixelFormatYV12    PixelFormat = 'Y'<<24 | 'V'<<16 | '1'<<8 | '2'
	PixelFormatYUV422P PixelFormat = '4'<<24 | '2'<<16 | '2'<<8 | 'P'
	PixelFormatYUV444P PixelFormat = '4'<<24 | '4'<<16 | '4'<<8 | 'P'
	PixelFormatAYUV    PixelFormat = 'A'<<24 | 'Y'<<16 | 'U'<<8 | 'V'
	PixelFormatP010LE  PixelFormat = 'P'<<24 | '0'<<16 | '1'<<8 | '0'

	PixelFormatGray8    PixelFormat = 'G'<<24 | 'R'<<16 | 'E'<<8 | 'Y'
	PixelFormatGray16LE PixelFormat = 'Y'<<24 | '1'<<16 | '6'<<8 | 'L'
	PixelFormatGray16BE PixelFormat = 'Y'<<24 | '1'<<16 | '6'<<8 | 'B'
	PixelFormatGray32LE PixelFormat = 'Y'<<24 | '3'<<16 | '2'<<8 | 'L'
	PixelFormatGrayA8   PixelFormat = 'Y'<<24 | 'A'<<16 | '0'<<8 | '8'
)

// PixelFormatARGBPack is the packed 32-bit ARGB format whose words read as
// a<<24 | r<<16 | g<<8 | b on the host. PixelFormatXRGBPack is the same
// without alpha.
var (
	PixelFormatARGBPack = nativePack(PixelFormatBGRA, PixelFormatARGB)
	PixelFormatXRGBPack = nativePack(PixelFormatBGRX, PixelFormatXRGB)
)

func nativePack(le, be PixelFormat) PixelFormat {
	if NativeByteOrder == BigEndian {
		return be
	}

	return le
}

type registryEntry struct {
	format PixelFormat
	name   string
	layout Layout
}

func c8(t ComponentType, step, offset int) Component {
	return Component{Type: t, Step: step, Offset: offset, ByteDepth: 1, Depth: 8}
}

func c8sub(t ComponentType, step, offset, wdiv, hdiv int) Component {
	return Component{Type: t, Step: step, Offset: offset, ByteDepth: 1, Depth: 8, WidthDiv: wdiv, HeightDiv: hdiv}
}

func c16(t ComponentType, step, offset int) Component {
	return Component{Type: t, Step: step, Offset: offset, ByteDepth: 2, Depth: 16}
}

func packed(t ComponentType, shift, depth int) Component {
	return Component{Type: t, Step: 2, Shift: shift, ByteDepth: 2, Depth: depth}
}

func rgb565(order ByteOrder, hi, lo ComponentType) Layout {
	return NewLayout(ChannelRGB, order, NewPlane(16,
		packed(hi, 11, 5), packed(ComponentG, 5, 6), packed(lo, 0, 5)))
}

func rgb555(order ByteOrder, hi, lo ComponentType) Layout {
	return NewLayout(ChannelRGB, order, NewPlane(16,
		packed(hi, 10, 5), packed(ComponentG, 5, 5), packed(lo, 0, 5)))
}

func planar8(t ComponentType, wdiv, hdiv, bits int) Plane {
	return NewPlane(bits, c8sub(t, 1, 0, wdiv, hdiv))
}

var registry = []registryEntry{
	{PixelFormatXRGB, "XRGB", NewLayout(ChannelRGB, NativeByteOrder, NewPlane(32,
		c8(ComponentR, 4, 1), c8(ComponentG, 4, 2), c8(ComponentB, 4, 3)))},
	{PixelFormatRGB24, "RGB24", NewLayout(ChannelRGB, NativeByteOrder, NewPlane(24,
		c8(ComponentR, 3, 0), c8(ComponentG, 3, 1), c8(ComponentB, 3, 2)))},
	{PixelFormatRGB565BE, "RGB565BE", rgb565(BigEndian, ComponentR, ComponentB)},
	{PixelFormatRGB565LE, "RGB565LE", rgb565(LittleEndian, ComponentR, ComponentB)},
	{PixelFormatRGB555BE, "RGB555BE", rgb555(BigEndian, ComponentR, ComponentB)},
	{PixelFormatRGB555LE, "RGB555LE", rgb555(LittleEndian, ComponentR, ComponentB)},
	{PixelFormatARGB, "ARGB", NewLayout(ChannelRGB, NativeByteOrder, NewPlane(32,
		c8(ComponentA, 4, 0), c8(ComponentR, 4, 1), c8(ComponentG, 4, 2), c8(ComponentB, 4, 3)))},
	{PixelFormatBGRX, "BGRX", NewLayout(ChannelRGB, NativeByteOrder, NewPlane(32,
		c8(ComponentB, 4, 0), c8(ComponentG, 4, 1), c8(ComponentR, 4, 2)))},
	{PixelFormatBGR24, "BGR24", NewLayout(ChannelRGB, NativeByteOrder, NewPlane(24,
		c8(ComponentB, 3, 0), c8(ComponentG, 3, 1), c8(ComponentR, 3, 2)))},
	{PixelFormatBGR565BE, "BGR565BE", rgb565(BigEndian, ComponentB, ComponentR)},
	{PixelFormatBGR565LE, "BGR565LE", rgb565(LittleEndian, ComponentB, ComponentR)},
	{PixelFormatBGR555BE, "BGR555BE", rgb555(BigEndian, ComponentB, ComponentR)},
	{PixelFormatBGR555LE, "BGR555LE", rgb555(LittleEndian, ComponentB, ComponentR)},
	{PixelFormatBGRA, "BGRA", NewLayout(ChannelRGB, NativeByteOrder, NewPlane(32,
		c8(ComponentB, 4, 0), c8(ComponentG, 4, 1), c8(ComponentR, 4, 2), c8(ComponentA, 4, 3)))},
	{PixelFormatRGB48LE, "RGB48LE", NewLayout(ChannelRGB, LittleEndian, NewPlane(48,
		c16(ComponentR, 6, 0), c16(ComponentG, 6, 2), c16(ComponentB, 6, 4)))},
	{PixelFormatRGB48BE, "RGB48BE", NewLayout(ChannelRGB, BigEndian, NewPlane(48,
		c16(ComponentR, 6, 0), c16(ComponentG, 6, 2), c16(ComponentB, 6, 4)))},
	{PixelFormatARGB64LE, "ARGB64LE", NewLayout(ChannelRGB, LittleEndian, NewPlane(64,
		c16(ComponentA, 8, 0), c16(ComponentR, 8, 2), c16(ComponentG, 8, 4), c16(ComponentB, 8, 6)))},

	{PixelFormatUYVY, "UYVY", NewLayout(ChannelYUV, NativeByteOrder, NewPlane(16,
		c8sub(ComponentU, 4, 0, 1, 0), c8(ComponentY, 2, 1), c8sub(ComponentV, 4, 2, 1, 0)))},
	{PixelFormatYUY2, "YUY2", NewLayout(ChannelYUV, NativeByteOrder, NewPlane(16,
		c8(ComponentY, 2, 0), c8sub(ComponentU, 4, 1, 1, 0), c8sub(ComponentV, 4, 3, 1, 0)))},
	{PixelFormatNV12, "NV12", NewLayout(ChannelYUV, NativeByteOrder,
		NewPlane(8, c8(ComponentY, 1, 0)),
		NewPlane(8, c8sub(ComponentU, 2, 0, 1, 1), c8sub(ComponentV, 2, 1, 1, 1)))},
	{PixelFormatNV21, "NV21", NewLayout(ChannelYUV, NativeByteOrder,
		NewPlane(8, c8(ComponentY, 1, 0)),
		NewPlane(8, c8sub(ComponentV, 2, 0, 1, 1), c8sub(ComponentU, 2, 1, 1, 1)))},
	{PixelFormatI420, "I420", NewLayout(ChannelYUV, NativeByteOrder,
		planar8(ComponentY, 0, 0, 8), planar8(ComponentU, 1, 1, 4), planar8(ComponentV, 1, 1, 4))},
	{PixelFormatYV12, "YV12", NewLayout(ChannelYUV, NativeByteOrder,
		planar8(ComponentY, 0, 0, 8), planar8(ComponentV, 1, 1, 4), planar8(ComponentU, 1, 1, 4))},
	{PixelFormatYUV422P, "YUV422P", NewLayout(ChannelYUV, NativeByteOrder,
		planar8(ComponentY, 0, 0, 8), planar8(ComponentU, 1, 0, 4), planar8(ComponentV, 1, 0, 4))},
	{PixelFormatYUV444P, "YUV444P", NewLayout(ChannelYUV, NativeByteOrder,
		planar8(ComponentY, 0, 0, 8), planar8(ComponentU, 0, 0, 8), planar8(ComponentV, 0, 0, 8))},
	{PixelFormatAYUV, "AYUV", NewLayout(ChannelYUV, NativeByteOrder, NewPlane(32,
		c8(ComponentA, 4, 0), c8(ComponentY, 4, 1), c8(ComponentU, 4, 2), c8(ComponentV, 4, 3)))},
	{PixelFormatP010LE, "P010LE", NewLayout(ChannelYUV, LittleEndian,
		NewPlane(16, Component{Type: ComponentY, Step: 2, Shift: 6, ByteDepth: 2, Depth: 10}),
		NewPlane(16,
			Component{Type: ComponentU, Step: 4, Offset: 0, Shift: 6, ByteDepth: 2, Depth: 10, WidthDiv: 1, HeightDiv: 1},
			Component{Type: ComponentV, Step: 4, Offset: 2, Shift: 6, ByteDepth: 2, Depth: 10, WidthDiv: 1, HeightDiv: 1}))},

	{PixelFormatGray8, "GRAY8", NewLayout(ChannelGray, NativeByteOrder, NewPlane(8,
		c8(ComponentY, 1, 0)))},
	{PixelFormatGray16LE, "GRAY16LE", NewLayout(ChannelGray, LittleEndian, NewPlane(16,
		c16(ComponentY, 2, 0)))},
	{PixelFormatGray16BE, "GRAY16BE", NewLayout(ChannelGray, BigEndian, NewPlane(16,
		c16(ComponentY, 2, 0)))},
	{PixelFormatGray32LE, "GRAY32LE", NewLayout(ChannelGray, LittleEndian, NewPlane(32,
		Component{Type: ComponentY, Step: 4, ByteDepth: 4, Depth: 32}))},
	{PixelFormatGrayA8, "GRAYA8", NewLayout(ChannelGray, NativeByteOrder, NewPlane(16,
		c8(ComponentY, 2, 0), c8(ComponentA, 2, 1)))},
}

var (
	byFormat = make(map[PixelFormat]*registryEntry, len(registry))
	byName   = make(map[string]*registryEntry, len(registry))
)

func init() {
	for i := range registry {
		e := &registry[i]
		byFormat[e.format] = e
		byName[strings.ToUpper(e.name)] = e
	}
}

// Lookup returns the layout of a registered format. Unknown formats return
// an invalid, zero Layout.
func Lookup(f PixelFormat) Layout {
	if e, ok := byFormat[f]; ok {
		return e.layout
	}

	return Layout{}
}

// FromName resolves a format name, case-insensitively. Unknown names return
// PixelFormatNone.
func FromName(name string) PixelFormat {
	if e, ok := byName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return e.format
	}

	return PixelFormatNone
}

// Name returns the registered name of a format, or "none".
func Name(f PixelFormat) string {
	if e, ok := byFormat[f]; ok {
		return e.name
	}

	return "none"
}

// SupportedFormats returns every registered format in registry order.
func SupportedFormats() []PixelFormat {
	formats := make([]PixelFormat, 0, len(registry))

	for _, e := range registry {
		formats = append(formats, e.format)
	}

	return formats
}

// SupportedNames returns the registered format names sorted alphabetically.
func SupportedNames() []string {
	names := make([]string, 0, len(byName))

	for _, e := range maps.Values(byName) {
		names = append(names, e.name)
	}

	slices.Sort(names)

	return names
}

// IsRegistered reports whether the format is known to the registry.
func (f PixelFormat) IsRegistered() bool {
	_, ok := byFormat[f]
	return ok
}

// String returns the registered name, or the FourCC code for unknown ids.
func (f PixelFormat) String() string {
	if e, ok := byFormat[f]; ok {
		return e.name
	}

	if f == PixelFormatNone {
		return "none"
	}

	return fmt.Sprintf("%c%c%c%c", byte(f>>24), byte(f>>16), byte(f>>8), byte(f))
}
