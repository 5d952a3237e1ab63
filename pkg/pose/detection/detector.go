// Package detection provides body landmark detection using computer vision.
package detection

import (
	"github.com/formcoach/formcoach/pkg/pose"
)

// Detector is the interface for pose estimation backends.
type Detector interface {
	// Detect finds body landmarks in the BGR image bytes of a single
	// person. A frame with no person yields an empty Frame, not an error.
	Detect(jpeg []byte) (pose.Frame, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum keypoint confidence (default 0.3)
	InputSize        int     // Model input side length (square)
}

// DefaultConfig returns production defaults for MoveNet Lightning.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/movenet_singlepose_lightning.onnx",
		ConfidenceThresh: 0.3,
		InputSize:        192,
	}
}
