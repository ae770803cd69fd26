package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spriteframes/spriteframes/internal/testutil"
	"github.com/spriteframes/spriteframes/sprites"
	"github.com/stretchr/testify/require"
)

func TestDefaultJobs(t *testing.T) {
	jobs := DefaultJobs("sprites", "sprite_frames")
	require.Len(t, jobs, 6)
	require.Equal(t, sprites.Job{
		Source:    filepath.Join("sprites", "walk", "Link (Back).gif"),
		Name:      "link_walk_back",
		OutputDir: filepath.Join("sprite_frames", "walk"),
	}, jobs[0])
	require.Equal(t, sprites.Job{
		Source:    filepath.Join("sprites", "attackSword", "Link (Normal) (Left) - Wooden Sword1.gif"),
		Name:      "link_attack_left",
		OutputDir: filepath.Join("sprite_frames", "attack"),
	}, jobs[5])
	var names []string
	for _, j := range jobs {
		names = append(names, j.Name)
	}
	require.Equal(t, []string{
		"link_walk_back", "link_walk_front", "link_walk_left",
		"link_attack_back", "link_attack_front", "link_attack_left",
	}, names)
}

func TestLoadJobs(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, filepath.Join(dir, "jobs.yaml"), []byte(`
jobs:
  - path: walk/Link (Back).gif
    name: link_walk_back
    output_dir: walk
  - path: /abs/hero.gif
    name: héros
    output_dir: /abs/out
`))
	jobs, err := LoadJobs(path, "sprites", "frames")
	require.NoError(t, err)
	require.Equal(t, []sprites.Job{
		{Source: filepath.Join("sprites", "walk", "Link (Back).gif"), Name: "link_walk_back", OutputDir: filepath.Join("frames", "walk")},
		{Source: "/abs/hero.gif", Name: "héros", OutputDir: "/abs/out"},
	}, jobs)

	for name, bad := range map[string]string{
		"duplicate": "jobs:\n  - {path: a.gif, name: a}\n  - {path: b.gif, name: a}\n",
		"no name":   "jobs:\n  - {path: a.gif}\n",
		"no path":   "jobs:\n  - {name: a}\n",
		"separator": "jobs:\n  - {path: a.gif, name: a/b}\n",
		"syntax":    "jobs: [\n",
	} {
		p := testutil.WriteFile(t, filepath.Join(dir, "bad.yaml"), []byte(bad))
		_, err = LoadJobs(p, "sprites", "frames")
		require.Error(t, err, name)
	}
	_, err = LoadJobs(filepath.Join(dir, "missing.yaml"), "sprites", "frames")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSpriteName(t *testing.T) {
	for input, expected := range map[string]string{
		"Link (Back).gif":   "link_back",
		"Link (Front)1.gif": "link_front_1",
		"attackSword_Link (Normal) (Back) - Wooden Sword.GIF": "attacksword_link_normal_back_wooden_sword",
		"__x__.gif": "x",
	} {
		require.Equal(t, expected, SpriteName(input), input)
	}
}

func TestScanJobs(t *testing.T) {
	dir := t.TempDir()
	sdir := filepath.Join(dir, "sprites")
	for _, p := range []string{
		"walk/Link (Back).gif", "walk/link back.GIF", "walk/notes.txt",
		"attack/Sword.gif", "loose.gif",
	} {
		testutil.WriteFile(t, filepath.Join(sdir, p), []byte("x"))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(sdir, "walk", "nested.gif"), 0o755))

	jobs, err := ScanJobs(sdir, "out")
	require.NoError(t, err)
	require.Equal(t, []sprites.Job{
		{Source: filepath.Join(sdir, "attack", "Sword.gif"), Name: "attack_sword", OutputDir: filepath.Join("out", "attack")},
		{Source: filepath.Join(sdir, "walk", "Link (Back).gif"), Name: "walk_link_back", OutputDir: filepath.Join("out", "walk")},
		{Source: filepath.Join(sdir, "walk", "link back.GIF"), Name: "walk_link_back_2", OutputDir: filepath.Join("out", "walk")},
	}, jobs)

	_, err = ScanJobs(filepath.Join(dir, "missing"), "out")
	require.Error(t, err)
}

func TestConfigJobs(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Parse(map[string]string{"SPRITEFRAMES_BASE_DIR": dir})
	require.NoError(t, err)
	jobs, err := cfg.Jobs()
	require.NoError(t, err)
	require.Len(t, jobs, 6)
	require.Equal(t, filepath.Join(dir, "sprites", "walk", "Link (Back).gif"), jobs[0].Source)

	testutil.WriteFile(t, filepath.Join(dir, "sprites", "walk", "a.gif"), []byte("x"))
	cfg.Scan = true
	jobs, err = cfg.Jobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "walk_a", jobs[0].Name)

	testutil.WriteFile(t, filepath.Join(dir, "jobs.yml"), []byte("jobs:\n  - {path: walk/a.gif, name: a, output_dir: w}\n"))
	cfg.JobsFile = "jobs.yml"
	jobs, err = cfg.Jobs()
	require.NoError(t, err)
	require.Equal(t, []sprites.Job{{
		Source: filepath.Join(dir, "sprites", "walk", "a.gif"), Name: "a", OutputDir: filepath.Join(dir, "sprite_frames", "w"),
	}}, jobs)
}
