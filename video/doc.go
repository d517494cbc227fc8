// Package video provides frames, format conversion and picture adjustments
// for a virtual camera.
//
// # Frames
//
// A Frame owns one aligned buffer holding every plane of an image in a
// registered pixel format (see package format):
//
//	frame := video.NewFrame(format.NewGeometry(format.PixelFormatNV12, 640, 480, fps))
//	frame.FillRGB(video.RGB(255, 0, 0, 255))
//
//	// Crop without sharing memory
//	part := frame.Copy(image.Rect(0, 0, 320, 240))
//
// Invalid geometries produce empty frames whose IsValid reports false.
// Bitmaps load through Load and LoadBMP; FromImage and ToImage bridge to
// the image package.
//
// # Conversion
//
// A Converter turns frames of any registered format into the configured
// output geometry, scaling and cropping on the way:
//
//	conv := video.NewConverter(format.NewGeometry(format.PixelFormatYUY2, 1280, 720, fps))
//	conv.SetScalingMode(video.ScalingLinear)
//	conv.SetAspectRatioMode(video.AspectRatioFit)
//
//	out, err := conv.Convert(frame)
//	if err != nil {
//	    return fmt.Errorf("conversion failed: %w", err)
//	}
//
// Each conversion runs through a plan built once per source geometry and
// settings. A plan chooses the pixel shape, the alpha handling, the
// sample reader and writer and the scaling kernel, and owns every index
// table and scratch buffer it needs. Plans live in cache slots: converting
// several sources per tick goes through a batch so each source keeps its
// own slot.
//
//	conv.Begin()
//	a, _ := conv.Convert(left)
//	b, _ := conv.Convert(right)
//	conv.End()
//
// ScalingFast picks the nearest source sample. ScalingLinear interpolates
// bilinearly when enlarging and averages the covered source area when
// reducing.
//
// # Adjustments
//
// An Adjuster applies hue, saturation, luminance, gamma, contrast,
// grayscale, red/blue swap and mirroring. Frames are normalized to
// PixelFormatARGBPack, passed through an EffectChain and converted back.
// The gamma and contrast tables are built once by NewTables and shared:
//
//	tables := video.NewTables()
//	adj := video.NewAdjuster(tables)
//	adj.SetContrast(40)
//	adj.SetHorizontalMirror(true)
//
//	adjusted, err := adj.Adjust(frame)
//
// # Errors
//
// Operations return errors wrapping the package sentinels, classified with
// errors.Is:
//
//	if errors.Is(err, video.ErrCacheExhausted) {
//	    conv.SetMaxCacheSlots(limits.MaxCacheSlots)
//	}
package video
