package video

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/opd-ai/vcam/format"
)

// Sample is the storage word of one component.
type Sample interface {
	uint8 | uint16 | uint32
}

// clamp limits v to [lo, hi].
func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// channel is a component bound to its plane and storage width for one plan.
type channel struct {
	comp  format.Component
	plane int
	shift uint
	max   uint64
	mask  uint64
	swap  bool
}

func newChannel(l format.Layout, t format.ComponentType) (channel, bool) {
	c, ok := l.Component(t)
	if !ok {
		return channel{}, false
	}

	return channel{
		comp:  c,
		plane: l.PlaneOf(t),
		shift: uint(c.Shift),
		max:   c.Max(),
		mask:  c.Mask(),
		swap:  l.ByteOrder != format.NativeByteOrder && c.ByteDepth > 1,
	}, true
}

func load[T Sample](b []byte) T {
	var v T

	switch any(v).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		return T(binary.NativeEndian.Uint16(b))
	default:
		return T(binary.NativeEndian.Uint32(b))
	}
}

func store[T Sample](b []byte, v T) {
	switch x := any(v).(type) {
	case uint8:
		b[0] = x
	case uint16:
		binary.NativeEndian.PutUint16(b, x)
	case uint32:
		binary.NativeEndian.PutUint32(b, x)
	}
}

func swapBytes[T Sample](v T) T {
	switch x := any(v).(type) {
	case uint16:
		return T(bits.ReverseBytes16(x))
	case uint32:
		return T(bits.ReverseBytes32(x))
	default:
		return v
	}
}

// readSample extracts a component value, swapping non-native words.
func readSample[T Sample](c *channel, b []byte, off int) int64 {
	v := load[T](b[off:])
	if c.swap {
		v = swapBytes(v)
	}

	return int64((uint64(v) >> c.shift) & c.max)
}

// readFast loads a full width, unshifted, native component value.
func readFast[T Sample](_ *channel, b []byte, off int) int64 {
	return int64(load[T](b[off:]))
}

// writeSample merges a value into its storage word without touching the
// bits of co-located components. Destination words are native until the
// whole buffer is swapped after the pass.
func writeSample[T Sample](c *channel, b []byte, off int, v int64) {
	old := uint64(load[T](b[off:]))
	store(b[off:], T((old&^c.mask)|(uint64(v)<<c.shift)&c.mask))
}

// writeFast stores a full width, unshifted component value.
func writeFast[T Sample](_ *channel, b []byte, off int, v int64) {
	store(b[off:], T(v))
}

type sampleReader func(c *channel, b []byte, off int) int64

type sampleWriter func(c *channel, b []byte, off int, v int64)

// readerFor resolves the reader of a storage width once per plan.
func readerFor(byteDepth int, fast bool) sampleReader {
	switch byteDepth {
	case 1:
		if fast {
			return readFast[uint8]
		}
		return readSample[uint8]
	case 2:
		if fast {
			return readFast[uint16]
		}
		return readSample[uint16]
	default:
		if fast {
			return readFast[uint32]
		}
		return readSample[uint32]
	}
}

// writerFor resolves the writer of a storage width once per plan.
func writerFor(byteDepth int, fast bool) sampleWriter {
	switch byteDepth {
	case 1:
		if fast {
			return writeFast[uint8]
		}
		return writeSample[uint8]
	case 2:
		if fast {
			return writeFast[uint16]
		}
		return writeSample[uint16]
	default:
		if fast {
			return writeFast[uint32]
		}
		return writeSample[uint32]
	}
}

// swapBuffer reverses the byte order of every word of a buffer.
func swapBuffer(data []byte, byteDepth int) {
	switch byteDepth {
	case 2:
		for i := 0; i+1 < len(data); i += 2 {
			binary.NativeEndian.PutUint16(data[i:], bits.ReverseBytes16(binary.NativeEndian.Uint16(data[i:])))
		}
	case 4:
		for i := 0; i+3 < len(data); i += 4 {
			binary.NativeEndian.PutUint32(data[i:], bits.ReverseBytes32(binary.NativeEndian.Uint32(data[i:])))
		}
	}
}

// putARGB stores an ARGB word in PixelFormatARGBPack order.
func putARGB(b []byte, argb uint32) {
	binary.NativeEndian.PutUint32(b, argb)
}

// getARGB loads a PixelFormatARGBPack pixel.
func getARGB(b []byte) uint32 {
	return binary.NativeEndian.Uint32(b)
}
