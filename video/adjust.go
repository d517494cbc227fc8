package video

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/format"
)

// AdjustRange bounds gamma and contrast settings to -AdjustRange..AdjustRange.
const AdjustRange = 255

const tableRows = 2*AdjustRange + 1

// Tables holds the gamma and contrast lookup tables. Each table has one
// 256 entry row per setting in -255..255. Tables are immutable after
// NewTables and safe to share between goroutines.
type Tables struct {
	gamma    []uint8
	contrast []uint8
}

// NewTables computes both lookup tables.
func NewTables() *Tables {
	t := &Tables{
		gamma:    make([]uint8, tableRows*256),
		contrast: make([]uint8, tableRows*256),
	}

	for g := -AdjustRange; g <= AdjustRange; g++ {
		k := 255.0
		if g > -AdjustRange {
			k = 255.0 / float64(g+255)
		}

		row := t.gamma[(g+AdjustRange)<<8:]
		for i := 0; i < 256; i++ {
			row[i] = uint8(255 * math.Pow(float64(i)/255, k))
		}
	}

	for c := -AdjustRange; c <= AdjustRange; c++ {
		f := 259 * float64(255+c) / (255 * float64(259-c))

		row := t.contrast[(c+AdjustRange)<<8:]
		for i := 0; i < 256; i++ {
			row[i] = uint8(clamp(int(f*float64(i-128)+128), 0, 255))
		}
	}

	return t
}

func tableRow(table []uint8, setting int) []uint8 {
	setting = clamp(setting, -AdjustRange, AdjustRange)
	off := (setting + AdjustRange) << 8

	return table[off : off+256 : off+256]
}

// Gamma maps one channel value through the gamma row of a setting.
func (t *Tables) Gamma(gamma int, v uint8) uint8 {
	return tableRow(t.gamma, gamma)[v]
}

// Contrast maps one channel value through the contrast row of a setting.
func (t *Tables) Contrast(contrast int, v uint8) uint8 {
	return tableRow(t.contrast, contrast)[v]
}

// GammaRow returns a copy of the gamma row of a setting.
func (t *Tables) GammaRow(gamma int) [256]uint8 {
	return [256]uint8(tableRow(t.gamma, gamma))
}

// ContrastRow returns a copy of the contrast row of a setting.
func (t *Tables) ContrastRow(contrast int) [256]uint8 {
	return [256]uint8(tableRow(t.contrast, contrast))
}

// Adjuster applies picture adjustments to frames of any format. Frames are
// converted to PixelFormatARGBPack, adjusted and converted back.
type Adjuster struct {
	tables *Tables

	hue        int
	saturation int
	luminance  int
	gamma      int
	contrast   int
	grayscale  bool
	swapRGB    bool
	hMirror    bool
	vMirror    bool

	input  *Converter
	output *Converter
}

// NewAdjuster creates a neutral adjuster using shared lookup tables.
func NewAdjuster(tables *Tables) *Adjuster {
	return &Adjuster{
		tables: tables,
		input:  newConverter(format.NewGeometry(format.PixelFormatARGBPack, 0, 0, format.Fraction{})),
		output: newConverter(format.Geometry{}),
	}
}

// SetHue rotates hues by the given number of degrees.
func (a *Adjuster) SetHue(hue int) {
	a.hue = hue
}

// Hue returns the hue rotation in degrees.
func (a *Adjuster) Hue() int {
	return a.hue
}

// SetSaturation shifts HSL saturation (0..255 scale).
func (a *Adjuster) SetSaturation(saturation int) {
	a.saturation = saturation
}

// Saturation returns the saturation shift.
func (a *Adjuster) Saturation() int {
	return a.saturation
}

// SetLuminance shifts HSL lightness (0..255 scale).
func (a *Adjuster) SetLuminance(luminance int) {
	a.luminance = luminance
}

// Luminance returns the luminance shift.
func (a *Adjuster) Luminance() int {
	return a.luminance
}

// SetGamma selects the gamma row, -255..255.
func (a *Adjuster) SetGamma(gamma int) {
	a.gamma = gamma
}

// Gamma returns the gamma setting.
func (a *Adjuster) Gamma() int {
	return a.gamma
}

// SetContrast selects the contrast row, -255..255.
func (a *Adjuster) SetContrast(contrast int) {
	a.contrast = contrast
}

// Contrast returns the contrast setting.
func (a *Adjuster) Contrast() int {
	return a.contrast
}

// SetGrayscale enables grayscale output.
func (a *Adjuster) SetGrayscale(enabled bool) {
	a.grayscale = enabled
}

// Grayscale reports whether grayscale output is enabled.
func (a *Adjuster) Grayscale() bool {
	return a.grayscale
}

// SetSwapRGB enables swapping of the red and blue channels.
func (a *Adjuster) SetSwapRGB(enabled bool) {
	a.swapRGB = enabled
}

// SwapRGB reports whether red and blue are swapped.
func (a *Adjuster) SwapRGB() bool {
	return a.swapRGB
}

// SetHorizontalMirror enables left-right mirroring.
func (a *Adjuster) SetHorizontalMirror(enabled bool) {
	a.hMirror = enabled
}

// HorizontalMirror reports whether left-right mirroring is enabled.
func (a *Adjuster) HorizontalMirror() bool {
	return a.hMirror
}

// SetVerticalMirror enables top-bottom mirroring.
func (a *Adjuster) SetVerticalMirror(enabled bool) {
	a.vMirror = enabled
}

// VerticalMirror reports whether top-bottom mirroring is enabled.
func (a *Adjuster) VerticalMirror() bool {
	return a.vMirror
}

// IsNeutral reports whether every setting leaves frames unchanged.
func (a *Adjuster) IsNeutral() bool {
	return a.hue == 0 && a.saturation == 0 && a.luminance == 0 &&
		a.gamma == 0 && a.contrast == 0 &&
		!a.grayscale && !a.swapRGB && !a.hMirror && !a.vMirror
}

// Chain returns the effects of the current settings in application order.
func (a *Adjuster) Chain() *EffectChain {
	chain := NewEffectChain()

	if a.hue != 0 || a.saturation != 0 || a.luminance != 0 {
		chain.AddEffect(NewHSLEffect(a.hue, a.saturation, a.luminance))
	}

	if a.contrast != 0 {
		chain.AddEffect(NewContrastEffect(a.tables, a.contrast))
	}

	if a.gamma != 0 {
		chain.AddEffect(NewGammaEffect(a.tables, a.gamma))
	}

	if a.grayscale {
		chain.AddEffect(NewGrayscaleEffect())
	}

	if a.swapRGB {
		chain.AddEffect(NewSwapRGBEffect())
	}

	if a.hMirror || a.vMirror {
		chain.AddEffect(NewMirrorEffect(a.hMirror, a.vMirror))
	}

	return chain
}

// Adjust returns frame with the current settings applied, in the format of
// the input. Neutral settings return frame itself. When a conversion fails
// the input frame is returned with the error.
func (a *Adjuster) Adjust(frame *Frame) (*Frame, error) {
	if a.IsNeutral() {
		return frame, nil
	}

	a.input.Begin()
	src, err := a.input.Convert(frame)
	a.input.End()

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Adjuster.Adjust",
			"error":    err.Error(),
		}).Warn("Failed to normalize frame")

		return frame, err
	}

	adjusted, err := a.Chain().Apply(src)
	if err != nil {
		return frame, err
	}

	a.output.SetOutputFormat(frame.Format())
	a.output.Begin()
	dst, err := a.output.Convert(adjusted)
	a.output.End()

	if err != nil {
		return frame, err
	}

	return dst, nil
}
