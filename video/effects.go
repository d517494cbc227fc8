package video

import (
	"fmt"

	"github.com/opd-ai/vcam/format"
)

// Effect represents a picture adjustment applied to PixelFormatARGBPack
// frames.
type Effect interface {
	// Apply processes a frame and returns the modified copy
	Apply(frame *Frame) (*Frame, error)
	// GetName returns the effect name for identification
	GetName() string
}

// EffectChain manages multiple effects applied in sequence.
type EffectChain struct {
	effects []Effect
}

// NewEffectChain creates a new effect processing chain.
func NewEffectChain() *EffectChain {
	return &EffectChain{
		effects: make([]Effect, 0),
	}
}

// AddEffect adds an effect to the processing chain.
func (ec *EffectChain) AddEffect(effect Effect) {
	ec.effects = append(ec.effects, effect)
}

// Apply processes a frame through all effects in the chain. The input frame
// is never modified.
func (ec *EffectChain) Apply(frame *Frame) (*Frame, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}

	if len(ec.effects) == 0 {
		return frame.Clone(), nil
	}

	current := frame
	for i, effect := range ec.effects {
		result, err := effect.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
		current = result
	}

	return current, nil
}

// GetEffectCount returns the number of effects in the chain.
func (ec *EffectChain) GetEffectCount() int {
	return len(ec.effects)
}

// Clear removes all effects from the chain.
func (ec *EffectChain) Clear() {
	ec.effects = ec.effects[:0]
}

// mapPixels returns a copy of frame with fn applied to every ARGB pixel.
func mapPixels(frame *Frame, fn func(argb uint32) uint32) (*Frame, error) {
	if err := checkARGB(frame); err != nil {
		return nil, err
	}

	result := frame.Clone()

	for y := 0; y < result.Height(); y++ {
		line := result.Line(0, y)
		for x := 0; x < result.Width(); x++ {
			putARGB(line[4*x:], fn(getARGB(line[4*x:])))
		}
	}

	return result, nil
}

func checkARGB(frame *Frame) error {
	if frame == nil {
		return ErrNilFrame
	}

	if frame.Format().Format != format.PixelFormatARGBPack || !frame.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, frame.Format().Format)
	}

	return nil
}

// HSLEffect rotates hue and shifts saturation and lightness.
type HSLEffect struct {
	hue        int
	saturation int
	luminance  int
}

// NewHSLEffect creates a hue/saturation/luminance effect. hue is in
// degrees; saturation and luminance are shifts on a 0..255 scale.
func NewHSLEffect(hue, saturation, luminance int) *HSLEffect {
	return &HSLEffect{
		hue:        hue,
		saturation: saturation,
		luminance:  luminance,
	}
}

// Apply adjusts every pixel in HSL space, keeping alpha.
func (he *HSLEffect) Apply(frame *Frame) (*Frame, error) {
	return mapPixels(frame, func(argb uint32) uint32 {
		h, s, l := rgbToHSL(int(Red(argb)), int(Green(argb)), int(Blue(argb)))
		h = mod(h+he.hue, 360)
		s = clamp(s+he.saturation, 0, 255)
		l = clamp(l+he.luminance, 0, 255)
		r, g, b := hslToRGB(h, s, l)

		return RGB(uint8(r), uint8(g), uint8(b), Alpha(argb))
	})
}

// GetName returns the effect name.
func (he *HSLEffect) GetName() string {
	return fmt.Sprintf("HSL(%+d,%+d,%+d)", he.hue, he.saturation, he.luminance)
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rgbToHSL converts 8-bit RGB to hue in degrees and saturation and
// lightness on a 0..255 scale.
func rgbToHSL(r, g, b int) (h, s, l int) {
	hi := max(r, g, b)
	lo := min(r, g, b)
	c := hi - lo
	l = (hi + lo) / 2

	if c == 0 {
		return 0, 0, l
	}

	switch hi {
	case r:
		h = mod(g-b, 6*c)
	case g:
		h = b - r + 2*c
	default:
		h = r - g + 4*c
	}

	h = 60 * h / c
	s = 255 * c / (255 - abs(hi+lo-255))

	return h, s, l
}

// hslToRGB is the inverse of rgbToHSL.
func hslToRGB(h, s, l int) (r, g, b int) {
	c := s * (255 - abs(2*l-255)) / 255
	x := c * (60 - abs(h%120-60)) / 60

	switch {
	case h >= 0 && h < 60:
		r, g, b = c, x, 0
	case h >= 60 && h < 120:
		r, g, b = x, c, 0
	case h >= 120 && h < 180:
		r, g, b = 0, c, x
	case h >= 180 && h < 240:
		r, g, b = 0, x, c
	case h >= 240 && h < 300:
		r, g, b = x, 0, c
	case h >= 300 && h < 360:
		r, g, b = c, 0, x
	}

	m := 2*l - c

	return (2*r + m) >> 1, (2*g + m) >> 1, (2*b + m) >> 1
}

// ContrastEffect maps channels through a contrast table row.
type ContrastEffect struct {
	tables   *Tables
	contrast int
}

// NewContrastEffect creates a contrast effect. contrast: -255 (flat gray)
// to +255 (maximum contrast), 0 = no change.
func NewContrastEffect(tables *Tables, contrast int) *ContrastEffect {
	return &ContrastEffect{
		tables:   tables,
		contrast: clamp(contrast, -AdjustRange, AdjustRange),
	}
}

// Apply maps the colour channels, keeping alpha.
func (ce *ContrastEffect) Apply(frame *Frame) (*Frame, error) {
	row := tableRow(ce.tables.contrast, ce.contrast)

	return mapPixels(frame, func(argb uint32) uint32 {
		return RGB(row[Red(argb)], row[Green(argb)], row[Blue(argb)], Alpha(argb))
	})
}

// GetName returns the effect name.
func (ce *ContrastEffect) GetName() string {
	return fmt.Sprintf("Contrast(%+d)", ce.contrast)
}

// GammaEffect maps channels through a gamma table row.
type GammaEffect struct {
	tables *Tables
	gamma  int
}

// NewGammaEffect creates a gamma effect. gamma: -255 (darkest) to +255
// (brightest), 0 = no change.
func NewGammaEffect(tables *Tables, gamma int) *GammaEffect {
	return &GammaEffect{
		tables: tables,
		gamma:  clamp(gamma, -AdjustRange, AdjustRange),
	}
}

// Apply maps the colour channels, keeping alpha.
func (ge *GammaEffect) Apply(frame *Frame) (*Frame, error) {
	row := tableRow(ge.tables.gamma, ge.gamma)

	return mapPixels(frame, func(argb uint32) uint32 {
		return RGB(row[Red(argb)], row[Green(argb)], row[Blue(argb)], Alpha(argb))
	})
}

// GetName returns the effect name.
func (ge *GammaEffect) GetName() string {
	return fmt.Sprintf("Gamma(%+d)", ge.gamma)
}

// GrayscaleEffect replaces every colour with its gray value.
type GrayscaleEffect struct{}

// NewGrayscaleEffect creates a grayscale conversion effect.
func NewGrayscaleEffect() *GrayscaleEffect {
	return &GrayscaleEffect{}
}

// Apply converts the frame to gray, keeping alpha.
func (ge *GrayscaleEffect) Apply(frame *Frame) (*Frame, error) {
	return mapPixels(frame, GrayPixel)
}

// GetName returns the effect name.
func (ge *GrayscaleEffect) GetName() string {
	return "Grayscale"
}

// SwapRGBEffect exchanges the red and blue channels.
type SwapRGBEffect struct{}

// NewSwapRGBEffect creates a red/blue swap effect.
func NewSwapRGBEffect() *SwapRGBEffect {
	return &SwapRGBEffect{}
}

// Apply swaps red and blue in every pixel.
func (se *SwapRGBEffect) Apply(frame *Frame) (*Frame, error) {
	return mapPixels(frame, func(argb uint32) uint32 {
		return RGB(Blue(argb), Green(argb), Red(argb), Alpha(argb))
	})
}

// GetName returns the effect name.
func (se *SwapRGBEffect) GetName() string {
	return "SwapRGB"
}

// MirrorEffect flips frames horizontally, vertically or both.
type MirrorEffect struct {
	horizontal bool
	vertical   bool
}

// NewMirrorEffect creates a mirror effect.
func NewMirrorEffect(horizontal, vertical bool) *MirrorEffect {
	return &MirrorEffect{
		horizontal: horizontal,
		vertical:   vertical,
	}
}

// Apply mirrors the frame.
func (me *MirrorEffect) Apply(frame *Frame) (*Frame, error) {
	if err := checkARGB(frame); err != nil {
		return nil, err
	}

	result := frame.Clone()
	width, height := result.Width(), result.Height()

	if me.horizontal {
		for y := 0; y < height; y++ {
			line := result.Line(0, y)
			for x := 0; x < width/2; x++ {
				a, b := line[4*x:4*x+4], line[4*(width-x-1):4*(width-x)]
				pa, pb := getARGB(a), getARGB(b)
				putARGB(a, pb)
				putARGB(b, pa)
			}
		}
	}

	if me.vertical {
		tmp := make([]byte, result.LineSize(0))
		for y := 0; y < height/2; y++ {
			top, bottom := result.Line(0, y), result.Line(0, height-y-1)
			copy(tmp, top)
			copy(top, bottom)
			copy(bottom, tmp)
		}
	}

	return result, nil
}

// GetName returns the effect name.
func (me *MirrorEffect) GetName() string {
	return fmt.Sprintf("Mirror(h=%t,v=%t)", me.horizontal, me.vertical)
}
