package video

import (
	"fmt"
	"strings"
)

// ScalingMode selects the resampling filter.
type ScalingMode int

const (
	// ScalingFast samples the nearest source pixel on both axes.
	ScalingFast ScalingMode = iota
	// ScalingLinear interpolates bilinearly when enlarging and averages
	// source boxes when reducing.
	ScalingLinear
)

func (m ScalingMode) String() string {
	switch m {
	case ScalingFast:
		return "Fast"
	case ScalingLinear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// ParseScalingMode resolves "Fast" or "Linear", case-insensitively.
func ParseScalingMode(name string) (ScalingMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fast":
		return ScalingFast, nil
	case "linear":
		return ScalingLinear, nil
	default:
		return ScalingFast, fmt.Errorf("unknown scaling mode %q", name)
	}
}

// AspectRatioMode selects how the source aspect ratio is honoured.
type AspectRatioMode int

const (
	// AspectRatioIgnore stretches the source over the whole output.
	AspectRatioIgnore AspectRatioMode = iota
	// AspectRatioKeep shrinks the output frame to the source aspect ratio.
	AspectRatioKeep
	// AspectRatioExpanding crops the source to the output aspect ratio.
	AspectRatioExpanding
	// AspectRatioFit letterboxes the source inside the output frame.
	AspectRatioFit
)

var aspectRatioModeNames = map[AspectRatioMode]string{
	AspectRatioIgnore:    "Ignore",
	AspectRatioKeep:      "Keep",
	AspectRatioExpanding: "Expanding",
	AspectRatioFit:       "Fit",
}

func (m AspectRatioMode) String() string {
	if name, ok := aspectRatioModeNames[m]; ok {
		return name
	}

	return "Unknown"
}

// ParseAspectRatioMode resolves a mode name, case-insensitively.
func ParseAspectRatioMode(name string) (AspectRatioMode, error) {
	for m, n := range aspectRatioModeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return m, nil
		}
	}

	return AspectRatioIgnore, fmt.Errorf("unknown aspect ratio mode %q", name)
}

// Shape is the channel arrangement of a conversion.
type Shape int

const (
	// ShapeVector rescales three channels of the same colour model.
	ShapeVector Shape = iota
	ShapeThreeToThree
	ShapeThreeToOne
	ShapeOneToThree
	ShapeOneToOne
)

func (s Shape) String() string {
	switch s {
	case ShapeVector:
		return "Vector"
	case ShapeThreeToThree:
		return "ThreeToThree"
	case ShapeThreeToOne:
		return "ThreeToOne"
	case ShapeOneToThree:
		return "OneToThree"
	case ShapeOneToOne:
		return "OneToOne"
	default:
		return "Unknown"
	}
}

// AlphaMode records which side of a conversion carries alpha.
type AlphaMode int

const (
	AlphaNone AlphaMode = iota
	AlphaSourceOnly
	AlphaDestOnly
	AlphaBoth
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaNone:
		return "None"
	case AlphaSourceOnly:
		return "SourceOnly"
	case AlphaDestOnly:
		return "DestOnly"
	case AlphaBoth:
		return "Both"
	default:
		return "Unknown"
	}
}

// ScaleDirection is the resampling direction of one axis.
type ScaleDirection int

const (
	ScaleKeep ScaleDirection = iota
	ScaleUp
	ScaleDown
)

func (d ScaleDirection) String() string {
	switch d {
	case ScaleKeep:
		return "Keep"
	case ScaleUp:
		return "Up"
	case ScaleDown:
		return "Down"
	default:
		return "Unknown"
	}
}

func scaleDirection(from, to int) ScaleDirection {
	switch {
	case to > from:
		return ScaleUp
	case to < from:
		return ScaleDown
	default:
		return ScaleKeep
	}
}
