package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spriteframes/spriteframes/sprites"
)

func print_header(w io.Writer, jobs []sprites.Job) {
	fmt.Fprintln(w, "=== SPRITE FRAME EXTRACTOR ===")
	fmt.Fprintf(w, "Processing %d sprites...\n\n", len(jobs))
}

func print_report(w io.Writer, r sprites.JobReport) {
	switch r.Status {
	case sprites.StatusSucceeded:
		fmt.Fprintf(w, "✅ %s: %d frames extracted\n", r.Job.Name, r.Result.FrameCount)
	case sprites.StatusFailed:
		fmt.Fprintf(w, "❌ Failed to process %s: %s\n", r.Job.Name, r.Err)
	case sprites.StatusSkipped:
		fmt.Fprintf(w, "⚠️  File not found: %s\n", r.Job.Source)
	case sprites.StatusPending:
		fmt.Fprintf(w, "⏸  %s: not processed, interrupted\n", r.Job.Name)
	}
}

func print_summary(w io.Writer, s *sprites.Summary, manifest string) {
	fmt.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "Sprites processed: %d\n", s.TotalGIFsProcessed)
	fmt.Fprintf(w, "Total frames extracted: %d\n", s.TotalFramesExtracted)
	fmt.Fprintf(w, "Manifest written to: %s\n\n", manifest)
}

type output_dir struct {
	name   string
	sample []string
}

// output_tree groups the frames of the succeeded jobs by the directory they
// were written to, in the order the directories were first used.
func output_tree(frames_dir string, reports []sprites.JobReport) (ans []*output_dir) {
	seen := make(map[string]*output_dir)
	for _, r := range reports {
		if r.Status != sprites.StatusSucceeded {
			continue
		}
		name, err := filepath.Rel(frames_dir, r.Job.OutputDir)
		if err != nil || strings.HasPrefix(name, "..") {
			name = r.Job.OutputDir
		}
		d := seen[name]
		if d == nil {
			d = &output_dir{name: filepath.ToSlash(name)}
			seen[name] = d
			ans = append(ans, d)
		}
		for _, f := range r.Result.Frames {
			if len(d.sample) >= 2 {
				break
			}
			d.sample = append(d.sample, f.Filename)
		}
	}
	return
}

func print_guidance(w io.Writer, frames_dir, manifest string, reports []sprites.JobReport) {
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "1. Run spriteframes again whenever a sprite source changes")
	fmt.Fprintf(w, "2. The PNG frames are saved in %s/\n", filepath.ToSlash(frames_dir))
	fmt.Fprintln(w, "3. Use the PNG frames in the game instead of the GIFs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output layout:")
	fmt.Fprintf(w, "%s/\n", filepath.ToSlash(filepath.Base(frames_dir)))
	for _, d := range output_tree(frames_dir, reports) {
		if d.name == "." {
			for _, f := range d.sample {
				fmt.Fprintf(w, "├── %s\n", f)
			}
			continue
		}
		fmt.Fprintf(w, "├── %s/\n", d.name)
		for _, f := range d.sample {
			fmt.Fprintf(w, "│   ├── %s\n", f)
		}
		fmt.Fprintln(w, "│   └── ...")
	}
	fmt.Fprintf(w, "└── %s\n", filepath.Base(manifest))
}
