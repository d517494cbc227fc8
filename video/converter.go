package video

import (
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/colorconv"
	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/limits"
)

// Converter converts frames into a configured output geometry. It keeps a
// small cache of conversion plans, one per slot, and rebuilds a slot's plan
// only when the source or the settings change.
//
// Only the output format is guarded for use from another goroutine; every
// other method must be called from the goroutine that converts.
type Converter struct {
	mu     sync.Mutex
	output format.Geometry

	space     colorconv.YuvColorSpace
	spaceType colorconv.ColorSpaceType
	scaling   ScalingMode
	aspect    AspectRatioMode
	inputRect image.Rectangle

	maxSlots   int
	plans      []*plan
	cacheIndex int
	inBatch    bool
	cursor     int
}

// NewConverter creates a converter for the given output geometry with
// BT.601 studio swing colour, fast scaling, stretched aspect ratio and the
// default cache size.
func NewConverter(output format.Geometry) *Converter {
	logrus.WithFields(logrus.Fields{
		"function": "NewConverter",
		"output":   output.String(),
	}).Info("Creating frame converter")

	return newConverter(output)
}

func newConverter(output format.Geometry) *Converter {
	return &Converter{
		output:    output,
		space:     colorconv.YuvColorSpaceBT601,
		spaceType: colorconv.StudioSwing,
		scaling:   ScalingFast,
		aspect:    AspectRatioIgnore,
		maxSlots:  limits.DefaultCacheSlots,
	}
}

// SetOutputFormat sets the output geometry. Widths or heights of zero or
// less keep the (cropped) source size.
func (c *Converter) SetOutputFormat(output format.Geometry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.output = output
}

// OutputFormat returns the configured output geometry.
func (c *Converter) OutputFormat() format.Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.output
}

// SetYuvColorSpace selects the YUV standard.
func (c *Converter) SetYuvColorSpace(space colorconv.YuvColorSpace) {
	c.space = space
}

// YuvColorSpace returns the YUV standard.
func (c *Converter) YuvColorSpace() colorconv.YuvColorSpace {
	return c.space
}

// SetYuvColorSpaceType selects studio or full swing coding.
func (c *Converter) SetYuvColorSpaceType(t colorconv.ColorSpaceType) {
	c.spaceType = t
}

// YuvColorSpaceType returns the range coding.
func (c *Converter) YuvColorSpaceType() colorconv.ColorSpaceType {
	return c.spaceType
}

// SetColorSpace sets the YUV standard and range coding together.
func (c *Converter) SetColorSpace(space colorconv.YuvColorSpace, t colorconv.ColorSpaceType) {
	c.space = space
	c.spaceType = t
}

// SetScalingMode selects the resampling filter.
func (c *Converter) SetScalingMode(mode ScalingMode) {
	c.scaling = mode
}

// ScalingMode returns the resampling filter.
func (c *Converter) ScalingMode() ScalingMode {
	return c.scaling
}

// SetAspectRatioMode selects how the source aspect ratio is honoured.
func (c *Converter) SetAspectRatioMode(mode AspectRatioMode) {
	c.aspect = mode
}

// AspectRatioMode returns the aspect ratio mode.
func (c *Converter) AspectRatioMode() AspectRatioMode {
	return c.aspect
}

// SetInputRect restricts conversion to a part of the source. The zero
// rectangle selects the whole source.
func (c *Converter) SetInputRect(rect image.Rectangle) {
	c.inputRect = rect
}

// InputRect returns the source crop rectangle.
func (c *Converter) InputRect() image.Rectangle {
	return c.inputRect
}

// SetCacheIndex selects the plan slot used outside a batch.
func (c *Converter) SetCacheIndex(index int) {
	c.cacheIndex = max(index, 0)
}

// CacheIndex returns the plan slot used outside a batch.
func (c *Converter) CacheIndex() int {
	return c.cacheIndex
}

// SetMaxCacheSlots changes the slot cap. Plans in slots beyond the new cap
// are released.
func (c *Converter) SetMaxCacheSlots(slots int) error {
	if err := limits.ValidateCacheSlots(slots); err != nil {
		return err
	}

	c.maxSlots = slots
	if len(c.plans) > slots {
		c.plans = c.plans[:slots]
	}

	return nil
}

// MaxCacheSlots returns the slot cap.
func (c *Converter) MaxCacheSlots() int {
	return c.maxSlots
}

// Begin starts a batch in which every Convert uses the next slot. It
// returns false when a batch is already open.
func (c *Converter) Begin() bool {
	if c.inBatch {
		return false
	}

	c.inBatch = true
	c.cursor = 0

	return true
}

// End closes the current batch.
func (c *Converter) End() {
	c.inBatch = false
	c.cursor = 0
}

// Reset releases every cached plan and clears the crop and batch state.
func (c *Converter) Reset() {
	c.plans = nil
	c.inputRect = image.Rectangle{}
	c.cacheIndex = 0
	c.inBatch = false
	c.cursor = 0
}

// Convert returns src converted into the output geometry. When nothing
// would change, src itself is returned. Failures return an empty frame and
// an error wrapping one of the package sentinels.
func (c *Converter) Convert(src *Frame) (*Frame, error) {
	if !src.IsValid() {
		return &Frame{}, ErrInvalidSourceFrame
	}

	out := c.OutputFormat()
	if !out.Format.IsRegistered() {
		return &Frame{}, fmt.Errorf("%w: %s", ErrInvalidOutputFormat, out.Format)
	}

	if c.isNoOp(src.geometry, out) {
		return src, nil
	}

	slot := c.cacheIndex
	if c.inBatch {
		slot = c.cursor
		c.cursor++
	}

	if slot >= c.maxSlots {
		logrus.WithFields(logrus.Fields{
			"function":  "Converter.Convert",
			"slot":      slot,
			"max_slots": c.maxSlots,
		}).Warn("Conversion plan cache exhausted")

		return &Frame{}, fmt.Errorf("%w: slot %d of %d", ErrCacheExhausted, slot, c.maxSlots)
	}

	for len(c.plans) <= slot {
		c.plans = append(c.plans, nil)
	}

	key := c.planKey(src.geometry, out)

	if p := c.plans[slot]; p == nil || p.key != key {
		p, err := newPlan(key, src.geometry, out)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Converter.Convert",
				"source":   src.geometry.String(),
				"output":   out.String(),
				"error":    err.Error(),
			}).Debug("Conversion plan rejected")

			c.plans[slot] = nil

			return &Frame{}, err
		}

		c.plans[slot] = p
	}

	dst := c.plans[slot].convert(src)
	if dst.IsValid() {
		dst.geometry.FPS = out.FPS
		if !out.FPS.IsValid() {
			dst.geometry.FPS = src.geometry.FPS
		}
	}

	return dst, nil
}

func (c *Converter) isNoOp(src, out format.Geometry) bool {
	if c.inputRect != (image.Rectangle{}) || src.Format != out.Format {
		return false
	}

	return (out.Width <= 0 || out.Width == src.Width) && (out.Height <= 0 || out.Height == src.Height)
}

func (c *Converter) planKey(src, out format.Geometry) planKey {
	return planKey{
		srcFormat: src.Format,
		srcWidth:  src.Width,
		srcHeight: src.Height,
		dstFormat: out.Format,
		dstWidth:  out.Width,
		dstHeight: out.Height,
		space:     c.space,
		spaceType: c.spaceType,
		scaling:   c.scaling,
		aspect:    c.aspect,
		rect:      c.inputRect,
	}
}
