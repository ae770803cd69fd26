package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spriteframes/spriteframes/sprites"
	"gopkg.in/yaml.v3"
)

type default_job struct {
	category, file, name, output string
}

var default_jobs = []default_job{
	{"walk", "Link (Back).gif", "link_walk_back", "walk"},
	{"walk", "Link (Front)1.gif", "link_walk_front", "walk"},
	{"walk", "Link (Left)1.gif", "link_walk_left", "walk"},
	{"attackSword", "Link (Normal) (Back) - Wooden Sword.gif", "link_attack_back", "attack"},
	{"attackSword", "Link (Normal) (Front) - Wooden Sword1.gif", "link_attack_front", "attack"},
	{"attackSword", "Link (Normal) (Left) - Wooden Sword1.gif", "link_attack_left", "attack"},
}

// DefaultJobs is the built-in list of Link walk and sword attack sprites.
func DefaultJobs(sprites_dir, frames_dir string) []sprites.Job {
	ans := make([]sprites.Job, 0, len(default_jobs))
	for _, j := range default_jobs {
		ans = append(ans, sprites.Job{
			Source:    filepath.Join(sprites_dir, j.category, j.file),
			Name:      j.name,
			OutputDir: filepath.Join(frames_dir, j.output),
		})
	}
	return ans
}

type jobs_file struct {
	Jobs []sprites.Job `yaml:"jobs"`
}

func join_relative(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// LoadJobs reads a YAML jobs file of the form:
//
//	jobs:
//	  - path: walk/Link (Back).gif
//	    name: link_walk_back
//	    output_dir: walk
//
// Relative paths are resolved against sprites_dir and relative output
// directories against frames_dir. Every job needs a path and a name and names
// must be unique.
func LoadJobs(path, sprites_dir, frames_dir string) ([]sprites.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jf jobs_file
	if err = yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	seen := make(map[string]int, len(jf.Jobs))
	ans := make([]sprites.Job, 0, len(jf.Jobs))
	for i, j := range jf.Jobs {
		switch {
		case j.Name == "":
			return nil, fmt.Errorf("%s: job %d has no name", path, i+1)
		case j.Source == "":
			return nil, fmt.Errorf("%s: job %s has no path", path, j.Name)
		case strings.ContainsAny(j.Name, `/\`):
			return nil, fmt.Errorf("%s: job name %q must not contain path separators", path, j.Name)
		}
		if prev, found := seen[j.Name]; found {
			return nil, fmt.Errorf("%s: job %d uses the name %s already used by job %d", path, i+1, j.Name, prev)
		}
		seen[j.Name] = i + 1
		j.Source = join_relative(sprites_dir, j.Source)
		j.OutputDir = join_relative(frames_dir, j.OutputDir)
		ans = append(ans, j)
	}
	return ans, nil
}

var non_name_chars = regexp.MustCompile(`[^a-z0-9]+`)

// SpriteName turns a file name such as "Link (Front)1.gif" into a sprite
// name such as "link_front_1": runs of anything but ASCII letters and digits
// become a single underscore.
func SpriteName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.Trim(non_name_chars.ReplaceAllString(strings.ToLower(stem), "_"), "_")
}

// ScanJobs creates one job for every GIF found at
// sprites_dir/<category>/*.gif. Frames go to frames_dir/<category> and
// sprites are named <category>_<file name>, with a numeric suffix when two
// files map to the same name.
func ScanJobs(sprites_dir, frames_dir string) ([]sprites.Job, error) {
	categories, err := os.ReadDir(sprites_dir)
	if err != nil {
		return nil, err
	}
	var ans []sprites.Job
	seen := make(map[string]bool)
	for _, c := range categories {
		if !c.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(sprites_dir, c.Name()))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".gif") {
				continue
			}
			base := SpriteName(c.Name() + "_" + e.Name())
			name := base
			for n := 2; seen[name]; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
			}
			seen[name] = true
			ans = append(ans, sprites.Job{
				Source:    filepath.Join(sprites_dir, c.Name(), e.Name()),
				Name:      name,
				OutputDir: filepath.Join(frames_dir, c.Name()),
			})
		}
	}
	return ans, nil
}

// Jobs returns the jobs to run: those of the jobs file if one is
// configured, else those found by scanning the sprites directory if
// scanning is enabled, else the built-in defaults.
func (c *Config) Jobs() ([]sprites.Job, error) {
	switch {
	case c.JobsFile != "":
		return LoadJobs(c.resolve(c.JobsFile), c.Sprites(), c.Frames())
	case c.Scan:
		return ScanJobs(c.Sprites(), c.Frames())
	}
	return DefaultJobs(c.Sprites(), c.Frames()), nil
}
