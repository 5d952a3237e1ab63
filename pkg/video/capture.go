// Package video wraps webcam capture and the on-frame overlay drawing
// for the trainer window and the dashboard stream.
package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Config holds capture settings.
type Config struct {
	Device  int // V4L2 device index
	Width   int
	Height  int
	Quality int // JPEG quality for the dashboard stream
}

// DefaultConfig returns capture defaults for a laptop webcam.
func DefaultConfig() Config {
	return Config{
		Device:  0,
		Width:   1280,
		Height:  720,
		Quality: 80,
	}
}

// Camera is an open webcam.
type Camera struct {
	capture *gocv.VideoCapture
	config  Config
}

// Open opens the capture device and applies the requested resolution.
func Open(cfg Config) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.Device, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	return &Camera{capture: capture, config: cfg}, nil
}

// Read grabs the next frame into img. Returns false when no frame is
// available (device unplugged or end of stream).
func (c *Camera) Read(img *gocv.Mat) bool {
	if !c.capture.Read(img) {
		return false
	}
	return !img.Empty()
}

// EncodeJPEG encodes a frame for the dashboard stream.
func (c *Camera) EncodeJPEG(img gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img,
		[]int{gocv.IMWriteJpegQuality, c.config.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the capture device.
func (c *Camera) Close() error {
	return c.capture.Close()
}
