package testing

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/interfaces"
	"github.com/opd-ai/vcam/video"
)

// ColorBars are the ARGB colours of the simulated test pattern, left to
// right.
var ColorBars = [8]uint32{
	video.RGB(255, 255, 255, 255),
	video.RGB(255, 255, 0, 255),
	video.RGB(0, 255, 255, 255),
	video.RGB(0, 255, 0, 255),
	video.RGB(255, 0, 255, 255),
	video.RGB(255, 0, 0, 255),
	video.RGB(0, 0, 255, 255),
	video.RGB(0, 0, 0, 255),
}

// SimulatedFrameSource implements a synthetic camera for testing. Every
// frame shows the colour bars shifted one bar left of the previous frame.
type SimulatedFrameSource struct {
	geometry  format.Geometry
	config    *interfaces.ConverterConfig
	converter *video.Converter
	frameLog  []FrameRecord
	count     uint64
	closed    bool
	mu        sync.RWMutex
}

// FrameRecord represents a frame request for testing verification
type FrameRecord struct {
	Index   uint64
	Size    int
	Success bool
	Error   error
}

// NewSimulatedFrameSource creates a new simulated source producing frames
// in geometry g
func NewSimulatedFrameSource(g format.Geometry, config *interfaces.ConverterConfig) (*SimulatedFrameSource, error) {
	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")
	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedFrameSource",
		"geometry": g.String(),
	}).Info("Creating simulated frame source for testing")

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("simulated source geometry: %w", err)
	}

	converter, err := config.NewConverter(g)
	if err != nil {
		return nil, fmt.Errorf("simulated source converter: %w", err)
	}

	return &SimulatedFrameSource{
		geometry:  g,
		config:    config,
		converter: converter,
		frameLog:  make([]FrameRecord, 0),
	}, nil
}

// NextFrame implements IFrameSource.NextFrame with a generated pattern
func (s *SimulatedFrameSource) NextFrame() (*video.Frame, error) {
	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.count

	if s.closed {
		s.frameLog = append(s.frameLog, FrameRecord{Index: index, Error: interfaces.ErrSourceClosed})
		return nil, interfaces.ErrSourceClosed
	}

	pattern := BarsFrame(s.geometry.Width, s.geometry.Height, int(index%uint64(len(ColorBars))))
	frame, err := s.converter.Convert(pattern)
	if err != nil {
		s.frameLog = append(s.frameLog, FrameRecord{Index: index, Error: err})

		logrus.WithFields(logrus.Fields{
			"function": "SimulatedFrameSource.NextFrame",
			"index":    index,
			"error":    err.Error(),
		}).Error("Failed to convert simulated frame")

		return nil, err
	}

	s.count++
	s.frameLog = append(s.frameLog, FrameRecord{Index: index, Size: frame.Size(), Success: true})

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedFrameSource.NextFrame",
		"index":    index,
		"size":     frame.Size(),
	}).Debug("Simulated frame generated")

	return frame, nil
}

// BarsFrame returns a PixelFormatARGBPack frame of vertical colour bars,
// starting with bar shift.
func BarsFrame(width, height, shift int) *video.Frame {
	frame := video.NewFrame(format.NewGeometry(format.PixelFormatARGBPack, width, height, format.Fraction{}))
	if !frame.IsValid() {
		return frame
	}

	bars := len(ColorBars)
	row := frame.Line(0, 0)

	for x := 0; x < width; x++ {
		binary.NativeEndian.PutUint32(row[4*x:], ColorBars[(x*bars/width+shift)%bars])
	}

	for y := 1; y < height; y++ {
		copy(frame.Line(0, y), row)
	}

	return frame
}

// Geometry implements IFrameSource.Geometry
func (s *SimulatedFrameSource) Geometry() format.Geometry {
	return s.geometry
}

// Close implements IFrameSource.Close
func (s *SimulatedFrameSource) Close() error {
	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")
	logrus.WithFields(logrus.Fields{
		"function": "SimulatedFrameSource.Close",
	}).Info("Closing simulated frame source")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// IsSimulation implements IFrameSource.IsSimulation
func (s *SimulatedFrameSource) IsSimulation() bool {
	return true
}

// FrameCount returns the number of frames produced so far
func (s *SimulatedFrameSource) FrameCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

// GetFrameLog returns the complete frame log for test verification
func (s *SimulatedFrameSource) GetFrameLog() []FrameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := make([]FrameRecord, len(s.frameLog))
	copy(log, s.frameLog)
	return log
}

// ClearFrameLog clears the frame log for test cleanup
func (s *SimulatedFrameSource) ClearFrameLog() {
	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameLog = make([]FrameRecord, 0)
}

// GetStats returns statistics about the simulation
func (s *SimulatedFrameSource) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	failedCount := 0
	for _, record := range s.frameLog {
		if !record.Success {
			failedCount++
		}
	}

	return map[string]interface{}{
		"frames_produced": s.count,
		"failed_requests": failedCount,
		"is_simulation":   true,
		"closed":          s.closed,
		"geometry":        s.geometry.String(),
		"scaling_mode":    s.config.ScalingMode.String(),
	}
}
