package video

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/formcoach/formcoach/pkg/exercise"
	"github.com/formcoach/formcoach/pkg/pose"
)

var (
	boneColor  = color.RGBA{0, 200, 80, 0}
	jointColor = color.RGBA{255, 255, 255, 0}
	hudColor   = color.RGBA{255, 255, 255, 0}
	cueColor   = color.RGBA{0, 220, 255, 0}
	warnColor  = color.RGBA{0, 80, 255, 0}
)

// skeleton lists the joint pairs connected by a bone.
var skeleton = [][2]pose.Joint{
	{pose.LeftShoulder, pose.RightShoulder},
	{pose.LeftShoulder, pose.LeftElbow},
	{pose.LeftElbow, pose.LeftWrist},
	{pose.RightShoulder, pose.RightElbow},
	{pose.RightElbow, pose.RightWrist},
	{pose.LeftShoulder, pose.LeftHip},
	{pose.RightShoulder, pose.RightHip},
	{pose.LeftHip, pose.RightHip},
	{pose.LeftHip, pose.LeftKnee},
	{pose.LeftKnee, pose.LeftAnkle},
	{pose.RightHip, pose.RightKnee},
	{pose.RightKnee, pose.RightAnkle},
}

// DrawPose draws the detected skeleton onto img. Landmark coordinates
// are normalized, so they scale with the frame size.
func DrawPose(img *gocv.Mat, frame pose.Frame) {
	w := float64(img.Cols())
	h := float64(img.Rows())

	px := func(lm pose.Landmark) image.Point {
		return image.Pt(int(lm.X*w), int(lm.Y*h))
	}

	for _, bone := range skeleton {
		a, okA := frame.Get(bone[0])
		b, okB := frame.Get(bone[1])
		if !okA || !okB {
			continue
		}
		gocv.Line(img, px(a), px(b), boneColor, 2)
	}
	for _, lm := range frame {
		gocv.Circle(img, px(lm), 4, jointColor, -1)
	}
}

// DrawHUD draws the rep counter, phase, and elbow angles in the top
// left corner, plus the last spoken cue along the bottom edge.
func DrawHUD(img *gocv.Mat, name string, st exercise.Status, cue string) {
	line := 0
	put := func(text string, c color.RGBA) {
		line++
		gocv.PutText(img, text, image.Pt(16, 28*line),
			gocv.FontHersheySimplex, 0.8, c, 2)
	}

	put(name, hudColor)
	if !st.Detected {
		put("no person detected", warnColor)
		return
	}

	if st.Alternating {
		put(fmt.Sprintf("reps: %d  (L %d / R %d)", st.Reps,
			st.SideReps[exercise.SideLeft], st.SideReps[exercise.SideRight]), hudColor)
		put(fmt.Sprintf("next: %s", st.NextSide), cueColor)
		if st.Missed > 0 {
			put(fmt.Sprintf("out of order: %d", st.Missed), warnColor)
		}
	} else {
		put(fmt.Sprintf("reps: %d", st.Reps), hudColor)
		put(fmt.Sprintf("phase: %s", st.Phase), hudColor)
	}

	if st.Left.Valid {
		put(fmt.Sprintf("left elbow: %.0f", st.Left.Degrees), hudColor)
	}
	if st.Right.Valid {
		put(fmt.Sprintf("right elbow: %.0f", st.Right.Degrees), hudColor)
	}

	if cue != "" {
		gocv.PutText(img, cue, image.Pt(16, img.Rows()-20),
			gocv.FontHersheySimplex, 0.7, cueColor, 2)
	}
}
