package real

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/interfaces"
	"github.com/opd-ai/vcam/video"
)

// Sleeper provides an abstraction over time.Sleep for deterministic testing.
type Sleeper interface {
	// Sleep pauses execution for the specified duration.
	Sleep(d time.Duration)
}

// DefaultSleeper implements Sleeper using the standard library time.Sleep.
type DefaultSleeper struct{}

// Sleep pauses execution for the specified duration using time.Sleep.
func (DefaultSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// BitmapFrameSource serves a still BMP image as a camera stream. The image
// is converted into the source geometry once; every frame is a copy of it.
type BitmapFrameSource struct {
	path      string
	geometry  format.Geometry
	config    *interfaces.ConverterConfig
	converter *video.Converter
	frame     *video.Frame
	count     uint64
	closed    bool
	mu        sync.RWMutex
	sleeper   Sleeper
}

// NewBitmapFrameSource loads the bitmap at path and converts it into g
func NewBitmapFrameSource(path string, g format.Geometry, config *interfaces.ConverterConfig) (*BitmapFrameSource, error) {
	logrus.WithFields(logrus.Fields{
		"function": "NewBitmapFrameSource",
		"path":     path,
		"geometry": g.String(),
	}).Info("Creating bitmap frame source")

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("bitmap source geometry: %w", err)
	}

	converter, err := config.NewConverter(g)
	if err != nil {
		return nil, fmt.Errorf("bitmap source converter: %w", err)
	}

	s := &BitmapFrameSource{
		path:      path,
		geometry:  g,
		config:    config,
		converter: converter,
		sleeper:   DefaultSleeper{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// SetSleeper sets a custom Sleeper implementation (primarily for testing).
func (s *BitmapFrameSource) SetSleeper(sl Sleeper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeper = sl
}

// load reads and converts the bitmap. Callers hold the write lock or own s
// exclusively.
func (s *BitmapFrameSource) load() error {
	var img video.Frame
	if err := img.Load(s.path); err != nil {
		return err
	}

	frame, err := s.converter.Convert(&img)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "BitmapFrameSource.load",
			"path":     s.path,
			"error":    err.Error(),
		}).Error("Failed to convert bitmap")

		return fmt.Errorf("convert %s: %w", s.path, err)
	}

	s.frame = frame

	logrus.WithFields(logrus.Fields{
		"function": "BitmapFrameSource.load",
		"source":   img.Format().String(),
		"output":   frame.Format().String(),
	}).Debug("Bitmap converted")

	return nil
}

// Reload reads the bitmap file again, keeping the previous image on failure
func (s *BitmapFrameSource) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return interfaces.ErrSourceClosed
	}

	return s.load()
}

// NextFrame implements IFrameSource.NextFrame. After the first frame each
// call waits one frame interval when the geometry carries a frame rate. The
// wait happens without holding the lock; a source closed meanwhile fails.
func (s *BitmapFrameSource) NextFrame() (*video.Frame, error) {
	s.mu.RLock()
	closed, started, sleeper := s.closed, s.count > 0, s.sleeper
	s.mu.RUnlock()

	if closed {
		return nil, interfaces.ErrSourceClosed
	}

	if started {
		if interval := frameInterval(s.geometry.FPS); interval > 0 {
			sleeper.Sleep(interval)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, interfaces.ErrSourceClosed
	}

	s.count++

	logrus.WithFields(logrus.Fields{
		"function": "BitmapFrameSource.NextFrame",
		"index":    s.count - 1,
	}).Debug("Serving bitmap frame")

	return s.frame.Clone(), nil
}

// frameInterval returns the duration of one frame, or 0 without a rate.
func frameInterval(fps format.Fraction) time.Duration {
	if !fps.IsValid() {
		return 0
	}

	return time.Duration(int64(time.Second) * fps.Den / fps.Num)
}

// Geometry implements IFrameSource.Geometry
func (s *BitmapFrameSource) Geometry() format.Geometry {
	return s.geometry
}

// Close implements IFrameSource.Close
func (s *BitmapFrameSource) Close() error {
	logrus.WithFields(logrus.Fields{
		"function": "BitmapFrameSource.Close",
		"path":     s.path,
		"frames":   s.FrameCount(),
	}).Info("Closing bitmap frame source")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.frame = nil

	return nil
}

// IsSimulation implements IFrameSource.IsSimulation
func (s *BitmapFrameSource) IsSimulation() bool {
	return false
}

// FrameCount returns the number of frames served so far
func (s *BitmapFrameSource) FrameCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

// GetStats returns statistics about the source
func (s *BitmapFrameSource) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"frames_served": s.count,
		"is_simulation": false,
		"closed":        s.closed,
		"path":          s.path,
		"geometry":      s.geometry.String(),
	}
}
