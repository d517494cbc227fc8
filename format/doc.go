// Package format describes pixel layouts and frame geometries.
//
// # Data Model
//
// A Component places one colour channel inside a plane: byte step between
// samples, byte offset, bit shift, storage width, bit depth and log2
// subsampling factors. A Plane groups the components that share one memory
// region, and a Layout combines the planes with a colour model (RGB, YUV or
// Gray) and a byte order.
//
//	layout := format.Lookup(format.PixelFormatNV12)
//	u, _ := layout.Component(format.ComponentU)
//	fmt.Println(layout.PlaneOf(format.ComponentU), u.WidthDiv) // 1 1
//
// # Registry
//
// Layouts are immutable and resolved through a fixed registry keyed by
// FourCC style PixelFormat ids:
//
//	f := format.FromName("yuy2")
//	fmt.Println(format.Name(f), format.Lookup(f).BitsPerPixel()) // YUY2 16
//
// Unknown ids resolve to an invalid Layout and unknown names to
// PixelFormatNone; callers check validity before use.
//
// # Geometry
//
// Geometry adds dimensions and a frame rate to a format. BufferSize aligns
// every line, every plane and the whole buffer to 32 bytes:
//
//	g := format.NewGeometry(format.PixelFormatNV12, 640, 480, format.Fraction{Num: 30, Den: 1})
//	fmt.Println(g.BufferSize()) // 460800
//
// Nearest picks the closest geometry out of a capability list, which is how
// a source is matched against the formats a consumer accepts.
package format
