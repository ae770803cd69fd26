// Package sprites extracts the frames of animated sprites into individual
// PNG files and describes them in a JSON manifest.
package sprites

import (
	"fmt"
	"time"
)

var _ = fmt.Print

// Job is one sprite to extract: the source container, the logical sprite
// name and the directory the frames are written to.
type Job struct {
	Source    string `json:"path" yaml:"path"`
	Name      string `json:"name" yaml:"name"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

func (j Job) String() string {
	return fmt.Sprintf("%s (%s)", j.Name, j.Source)
}

// FrameRecord describes one extracted frame.
type FrameRecord struct {
	Filename    string `json:"filename"`
	FrameNumber int    `json:"frame_number"`
	Duration    int    `json:"duration"` // milliseconds
}

// SpriteResult describes all frames extracted for a single job.
type SpriteResult struct {
	Name          string        `json:"name"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	FrameCount    int           `json:"frame_count"`
	FrameDuration int           `json:"frame_duration"` // milliseconds
	Frames        []FrameRecord `json:"frames"`
}

// FrameFilename is the name of the file frame index of sprite name is saved
// as. Indices below 1000 are zero padded to three digits.
func FrameFilename(name string, index int) string {
	return fmt.Sprintf("%s_frame_%03d.png", name, index)
}

func milliseconds(d time.Duration) int {
	return int(d / time.Millisecond)
}
