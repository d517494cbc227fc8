// Package real provides the file backed frame source for vcam.
//
// This package implements the interfaces.IFrameSource interface with a
// still BMP image, the picture a virtual camera shows when no live input is
// connected. It is the production counterpart of the simulated source in
// the testing package.
//
// # Architecture
//
// BitmapFrameSource loads the bitmap once, converts it into the requested
// geometry with a converter configured from interfaces.ConverterConfig, and
// hands out copies of the converted frame:
//
//	┌──────────────┐     ┌──────────────────┐     ┌──────────────────┐
//	│  still.bmp   │ ──▶ │ video.Converter  │ ──▶ │ converted frame  │
//	│ (24/32 bit)  │     │ (format, scale)  │     │ (Clone per call) │
//	└──────────────┘     └──────────────────┘     └──────────────────┘
//
// # Usage
//
//	config := &interfaces.ConverterConfig{
//	    YuvColorSpace: colorconv.YuvColorSpaceBT601,
//	    ScalingMode:   video.ScalingLinear,
//	    CacheSlots:    1,
//	}
//
//	g := format.NewGeometry(format.PixelFormatNV12, 1280, 720, format.Fraction{Num: 30, Den: 1})
//	src, err := real.NewBitmapFrameSource("placeholder.bmp", g, config)
//
//	frame, err := src.NextFrame()
//
// Reload picks up a changed file. A failed reload keeps serving the
// previous image.
//
// # Frame Pacing
//
// When the geometry carries a frame rate, every NextFrame after the first
// waits one frame interval. The wait goes through the Sleeper interface,
// which tests replace via SetSleeper():
//
//	type mockSleeper struct {
//	    sleepCalls []time.Duration
//	}
//
//	func (m *mockSleeper) Sleep(d time.Duration) {
//	    m.sleepCalls = append(m.sleepCalls, d)
//	}
//
//	src.SetSleeper(&mockSleeper{})
//
// # Thread Safety
//
// All methods on BitmapFrameSource are safe for concurrent use. The frame
// interval wait runs outside the mutex, so FrameCount, GetStats and Close
// never wait for a pacing sleep. A source closed during the wait fails the
// pending NextFrame with interfaces.ErrSourceClosed.
package real
