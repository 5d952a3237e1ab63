package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/formcoach/formcoach/pkg/pose"
)

// MoveNetDetector runs single-person pose estimation with a MoveNet
// ONNX model through OpenCV's DNN module.
type MoveNetDetector struct {
	net    gocv.Net
	config Config
	mu     sync.Mutex // Protects inference
}

// NewMoveNet loads the MoveNet model from cfg.ModelPath.
func NewMoveNet(cfg Config) (*MoveNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("load model: %s", cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &MoveNetDetector{
		net:    net,
		config: cfg,
	}, nil
}

// Detect finds body landmarks in the JPEG image.
func (d *MoveNetDetector) Detect(jpeg []byte) (pose.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	return d.detectMat(img)
}

// DetectMat runs inference on an already-decoded BGR Mat. The capture
// loop uses this path to avoid a JPEG round trip per frame.
func (d *MoveNetDetector) DetectMat(img gocv.Mat) (pose.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	return d.detectMat(img)
}

func (d *MoveNetDetector) detectMat(img gocv.Mat) (pose.Frame, error) {
	size := d.config.InputSize
	blob := gocv.BlobFromImage(img, 1.0, image.Pt(size, size),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	// MoveNet output is [1, 1, 17, 3]: for each keypoint a
	// (y, x, score) triple with coordinates normalized to 0-1.
	flat, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	if len(flat) < pose.NumJoints*3 {
		return nil, fmt.Errorf("unexpected output size %d", len(flat))
	}

	return parseKeypoints(flat, d.config.ConfidenceThresh), nil
}

// parseKeypoints converts the flat (y, x, score) triples into a Frame,
// keeping only keypoints above minConf.
func parseKeypoints(flat []float32, minConf float64) pose.Frame {
	frame := make(pose.Frame, pose.NumJoints)
	for j := 0; j < pose.NumJoints; j++ {
		y := float64(flat[j*3])
		x := float64(flat[j*3+1])
		score := float64(flat[j*3+2])
		if score < minConf {
			continue
		}
		frame[pose.Joint(j)] = pose.Landmark{
			X:          x,
			Y:          y,
			Visibility: score,
		}
	}
	return frame
}

// Close releases the network resources.
func (d *MoveNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
