package format

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// ChannelType is the colour model of a layout.
type ChannelType int

const (
	ChannelUnknown ChannelType = iota
	ChannelRGB
	ChannelYUV
	ChannelGray
)

// String returns the colour model name.
func (t ChannelType) String() string {
	switch t {
	case ChannelRGB:
		return "RGB"
	case ChannelYUV:
		return "YUV"
	case ChannelGray:
		return "Gray"
	default:
		return "Unknown"
	}
}

// ByteOrder is the order in which multi-byte samples are stored.
type ByteOrder int

const (
	LittleEndian ByteOrder = 1234
	BigEndian    ByteOrder = 4321
)

// NativeByteOrder is the byte order of the host.
var NativeByteOrder = nativeByteOrder()

func nativeByteOrder() ByteOrder {
	if cpu.IsBigEndian {
		return BigEndian
	}

	return LittleEndian
}

// String returns "LE" or "BE".
func (o ByteOrder) String() string {
	if o == BigEndian {
		return "BE"
	}

	return "LE"
}

// Layout describes a pixel format: colour model, byte order and planes.
// Layouts are immutable once built by the registry.
type Layout struct {
	Type      ChannelType
	ByteOrder ByteOrder
	planes    []Plane
}

// NewLayout builds a layout from its planes.
func NewLayout(t ChannelType, order ByteOrder, planes ...Plane) Layout {
	return Layout{
		Type:      t,
		ByteOrder: order,
		planes:    append([]Plane(nil), planes...),
	}
}

// IsValid reports whether the layout describes a usable format.
func (l Layout) IsValid() bool {
	return l.Type != ChannelUnknown && len(l.planes) > 0
}

// Planes returns the number of planes.
func (l Layout) Planes() int {
	return len(l.planes)
}

// Plane returns the i-th plane.
func (l Layout) Plane(i int) Plane {
	return l.planes[i]
}

// Component returns the first component of the given type.
func (l Layout) Component(t ComponentType) (Component, bool) {
	for _, p := range l.planes {
		for _, c := range p.components {
			if c.Type == t {
				return c, true
			}
		}
	}

	return Component{}, false
}

// PlaneOf returns the index of the plane holding the component, or -1.
func (l Layout) PlaneOf(t ComponentType) int {
	for i, p := range l.planes {
		for _, c := range p.components {
			if c.Type == t {
				return i
			}
		}
	}

	return -1
}

// Contains reports whether the layout carries the component.
func (l Layout) Contains(t ComponentType) bool {
	return l.PlaneOf(t) >= 0
}

// BitsPerPixel returns the sum of the plane bit sizes.
func (l Layout) BitsPerPixel() int {
	bpp := 0

	for _, p := range l.planes {
		bpp += p.bitsSize
	}

	return bpp
}

// NumberOfComponents returns the number of components over all planes.
func (l Layout) NumberOfComponents() int {
	n := 0

	for _, p := range l.planes {
		n += len(p.components)
	}

	return n
}

// MainComponents returns the number of colour channels, ignoring alpha.
func (l Layout) MainComponents() int {
	switch l.Type {
	case ChannelRGB, ChannelYUV:
		return 3
	case ChannelGray:
		return 1
	default:
		return 0
	}
}

// MainComponentTypes returns the colour channels in matrix order
// (R,G,B or Y,U,V or Y).
func (l Layout) MainComponentTypes() []ComponentType {
	switch l.Type {
	case ChannelRGB:
		return []ComponentType{ComponentR, ComponentG, ComponentB}
	case ChannelYUV:
		return []ComponentType{ComponentY, ComponentU, ComponentV}
	case ChannelGray:
		return []ComponentType{ComponentY}
	default:
		return nil
	}
}

func (l Layout) reference() (Component, bool) {
	if l.Type == ChannelRGB {
		return l.Component(ComponentR)
	}

	return l.Component(ComponentY)
}

// ByteDepth returns the storage width of the reference channel.
func (l Layout) ByteDepth() int {
	c, _ := l.reference()
	return c.ByteDepth
}

// Depth returns the bit depth of the reference channel.
func (l Layout) Depth() int {
	c, _ := l.reference()
	return c.Depth
}

// IsFast reports whether samples can be moved without shifting, masking or
// swapping: native byte order, no shifts, and equal power of two depths.
func (l Layout) IsFast() bool {
	if l.ByteOrder != NativeByteOrder || !l.IsValid() {
		return false
	}

	depth := -1

	for _, p := range l.planes {
		for _, c := range p.components {
			if c.Shift != 0 || bits.OnesCount(uint(c.Depth)) != 1 {
				return false
			}

			if depth >= 0 && c.Depth != depth {
				return false
			}

			depth = c.Depth
		}
	}

	return true
}
