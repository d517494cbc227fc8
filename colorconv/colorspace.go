package colorconv

import (
	"fmt"
	"strings"
)

// YuvColorSpace selects the luma coefficients of a YUV standard.
type YuvColorSpace int

const (
	YuvColorSpaceAVG YuvColorSpace = iota
	YuvColorSpaceBT601
	YuvColorSpaceBT709
	YuvColorSpaceBT2020
	YuvColorSpaceSMPTE240M
)

// lumaDiv is the common denominator of the luma constants.
const lumaDiv = 10000

// LumaConstants returns kr, kb and their denominator. kg is div - kr - kb.
func (s YuvColorSpace) LumaConstants() (kr, kb, div int64) {
	switch s {
	case YuvColorSpaceAVG:
		return 3333, 3333, lumaDiv
	case YuvColorSpaceBT601:
		return 2990, 1140, lumaDiv
	case YuvColorSpaceBT709:
		return 2126, 722, lumaDiv
	case YuvColorSpaceBT2020:
		return 2627, 593, lumaDiv
	case YuvColorSpaceSMPTE240M:
		return 2120, 870, lumaDiv
	default:
		return 0, 0, lumaDiv
	}
}

var yuvColorSpaceNames = map[YuvColorSpace]string{
	YuvColorSpaceAVG:       "AVG",
	YuvColorSpaceBT601:     "BT601",
	YuvColorSpaceBT709:     "BT709",
	YuvColorSpaceBT2020:    "BT2020",
	YuvColorSpaceSMPTE240M: "SMPTE240M",
}

func (s YuvColorSpace) String() string {
	if name, ok := yuvColorSpaceNames[s]; ok {
		return name
	}

	return "Unknown"
}

// ParseYuvColorSpace resolves a standard name such as "bt709".
func ParseYuvColorSpace(name string) (YuvColorSpace, error) {
	for s, n := range yuvColorSpaceNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}

	return YuvColorSpaceBT601, fmt.Errorf("unknown YUV color space %q", name)
}

// ColorSpaceType selects studio (limited) or full range coding.
type ColorSpaceType int

const (
	StudioSwing ColorSpaceType = iota
	FullSwing
)

func (t ColorSpaceType) String() string {
	switch t {
	case StudioSwing:
		return "StudioSwing"
	case FullSwing:
		return "FullSwing"
	default:
		return "Unknown"
	}
}

// ParseColorSpaceType resolves "StudioSwing"/"FullSwing" (also "studio",
// "limited", "full").
func ParseColorSpaceType(name string) (ColorSpaceType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "studioswing", "studio", "limited":
		return StudioSwing, nil
	case "fullswing", "full":
		return FullSwing, nil
	default:
		return StudioSwing, fmt.Errorf("unknown color space type %q", name)
	}
}

// MatrixKind is the transform a Matrix performs.
type MatrixKind int

const (
	// ABC2XYZ rescales three (or one) channels between bit depths without
	// changing the colour model.
	ABC2XYZ MatrixKind = iota
	RGB2YUV
	YUV2RGB
	RGB2Gray
	Gray2RGB
	YUV2Gray
	Gray2YUV
)

func (k MatrixKind) String() string {
	switch k {
	case ABC2XYZ:
		return "ABC2XYZ"
	case RGB2YUV:
		return "RGB2YUV"
	case YUV2RGB:
		return "YUV2RGB"
	case RGB2Gray:
		return "RGB2Gray"
	case Gray2RGB:
		return "Gray2RGB"
	case YUV2Gray:
		return "YUV2Gray"
	case Gray2YUV:
		return "Gray2YUV"
	default:
		return "Unknown"
	}
}
