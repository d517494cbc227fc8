package video

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"

	"github.com/opd-ai/vcam/format"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
)

// Load replaces the frame contents with a 24 or 32-bit BMP file. On failure
// the frame is left unchanged.
func (f *Frame) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Frame.Load",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to open bitmap")

		return fmt.Errorf("open bitmap: %w", err)
	}
	defer file.Close()

	if err := f.LoadBMP(bufio.NewReader(file)); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

// LoadBMP replaces the frame contents with a 24 or 32-bit bottom-up BMP
// stream. The pixels are stored in PixelFormatARGBPack. On failure the
// frame is left unchanged.
func (f *Frame) LoadBMP(r io.Reader) error {
	header := make([]byte, bmpFileHeaderSize+bmpInfoHeaderSize)

	if err := readBMPHeader(r, header); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Frame.LoadBMP",
			"error":    err.Error(),
		}).Error("Rejected bitmap header")

		return err
	}

	img, err := bmp.Decode(io.MultiReader(bytes.NewReader(header), r))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Frame.LoadBMP",
			"error":    err.Error(),
		}).Error("Failed to decode bitmap")

		return fmt.Errorf("%w: %v", ErrInvalidBitmap, err)
	}

	loaded := FromImage(img)
	if !loaded.IsValid() {
		return fmt.Errorf("%w: %dx%d image", ErrInvalidBitmap, img.Bounds().Dx(), img.Bounds().Dy())
	}

	loaded.geometry.FPS = f.geometry.FPS
	*f = *loaded

	logrus.WithFields(logrus.Fields{
		"function": "Frame.LoadBMP",
		"width":    f.Width(),
		"height":   f.Height(),
	}).Debug("Bitmap loaded")

	return nil
}

// readBMPHeader reads and validates the file header and the fixed part of
// the info header.
func readBMPHeader(r io.Reader, header []byte) error {
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("%w: short header: %v", ErrInvalidBitmap, err)
	}

	if header[0] != 'B' || header[1] != 'M' {
		return fmt.Errorf("%w: bad signature %q", ErrInvalidBitmap, header[:2])
	}

	info := header[bmpFileHeaderSize:]
	infoSize := binary.LittleEndian.Uint32(info[0:4])
	width := int32(binary.LittleEndian.Uint32(info[4:8]))
	height := int32(binary.LittleEndian.Uint32(info[8:12]))
	bitCount := binary.LittleEndian.Uint16(info[14:16])

	if infoSize < bmpInfoHeaderSize {
		return fmt.Errorf("%w: info header size %d", ErrInvalidBitmap, infoSize)
	}

	if width < 1 || height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBitmap, width, height)
	}

	if bitCount != 24 && bitCount != 32 {
		return fmt.Errorf("%w: %d bits per pixel", ErrInvalidBitmap, bitCount)
	}

	return nil
}

// FromImage copies an image into a new PixelFormatARGBPack frame with
// non-premultiplied alpha.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := NewFrame(format.NewGeometry(format.PixelFormatARGBPack, b.Dx(), b.Dy(), format.Fraction{}))

	if !f.IsValid() {
		return f
	}

	for y := 0; y < b.Dy(); y++ {
		line := f.Line(0, y)

		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			putARGB(line[4*x:], RGB(c.R, c.G, c.B, c.A))
		}
	}

	return f
}

// ToImage converts the frame into an NRGBA image.
func (f *Frame) ToImage() (*image.NRGBA, error) {
	if !f.IsValid() {
		return nil, ErrInvalidFrame
	}

	out := f.geometry
	out.Format = format.PixelFormatARGBPack

	argb, err := newConverter(out).Convert(f)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, argb.Width(), argb.Height()))

	for y := 0; y < argb.Height(); y++ {
		line := argb.Line(0, y)
		row := img.Pix[y*img.Stride:]

		for x := 0; x < argb.Width(); x++ {
			px := getARGB(line[4*x:])
			row[4*x+0] = Red(px)
			row[4*x+1] = Green(px)
			row[4*x+2] = Blue(px)
			row[4*x+3] = Alpha(px)
		}
	}

	return img, nil
}
