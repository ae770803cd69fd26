package sprites

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spriteframes/spriteframes/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fake_extractor struct {
	calls   []string
	results map[string]*SpriteResult
}

func (f *fake_extractor) Extract(ctx context.Context, job Job) (*SpriteResult, error) {
	f.calls = append(f.calls, job.Name)
	if r, ok := f.results[job.Name]; ok {
		return r, nil
	}
	return nil, job_error(job.Source, ErrDecode, errors.New("boom"))
}

func sprite_result(name string, frames int) *SpriteResult {
	r := &SpriteResult{Name: name, Width: 1, Height: 1, FrameCount: frames, FrameDuration: 100}
	for i := range frames {
		r.Frames = append(r.Frames, FrameRecord{Filename: FrameFilename(name, i), FrameNumber: i, Duration: 100})
	}
	return r
}

func check_invariants(t *testing.T, s *Summary) {
	t.Helper()
	total := 0
	for _, name := range s.Names() {
		r, ok := s.Get(name)
		require.True(t, ok)
		require.Equal(t, name, r.Name)
		require.Len(t, r.Frames, r.FrameCount)
		total += r.FrameCount
	}
	require.Equal(t, total, s.TotalFramesExtracted)
	require.Equal(t, s.Len(), s.TotalGIFsProcessed)
}

func TestBatchRun(t *testing.T) {
	tdir := t.TempDir()
	existing := func(name string) string {
		return testutil.WriteFile(t, filepath.Join(tdir, name+".gif"), []byte("x"))
	}
	fake := &fake_extractor{results: map[string]*SpriteResult{
		"walk":   sprite_result("walk", 4),
		"attack": sprite_result("attack", 3),
	}}
	jobs := []Job{
		{Source: existing("walk"), Name: "walk"},
		{Source: filepath.Join(tdir, "missing.gif"), Name: "missing"},
		{Source: existing("broken"), Name: "broken"},
		{Source: existing("attack"), Name: "attack"},
	}
	summary, reports := NewBatch(fake, nil).Run(context.Background(), jobs)

	require.Equal(t, []string{"walk", "broken", "attack"}, fake.calls, "missing sources must not reach the extractor")
	require.Equal(t, []JobStatus{StatusSucceeded, StatusSkipped, StatusFailed, StatusSucceeded},
		[]JobStatus{reports[0].Status, reports[1].Status, reports[2].Status, reports[3].Status})
	require.ErrorIs(t, reports[1].Err, ErrSourceMissing)
	require.ErrorIs(t, reports[2].Err, ErrDecode)
	require.Nil(t, reports[2].Result)
	require.Same(t, fake.results["walk"], reports[0].Result)

	require.Equal(t, []string{"walk", "attack"}, summary.Names())
	require.Equal(t, 2, summary.TotalGIFsProcessed)
	require.Equal(t, 7, summary.TotalFramesExtracted)
	check_invariants(t, summary)
	require.Equal(t, 2, Count(reports, StatusSucceeded))
	require.Equal(t, 1, Count(reports, StatusSkipped))
	require.Equal(t, 1, Count(reports, StatusFailed))
}

func TestBatchAllMissing(t *testing.T) {
	fake := &fake_extractor{}
	summary, reports := NewBatch(fake, nil).Run(context.Background(), []Job{{Source: "nope/a.gif", Name: "a"}})
	require.Empty(t, fake.calls)
	require.Equal(t, 0, summary.Len())
	require.Equal(t, 0, summary.TotalGIFsProcessed)
	require.Equal(t, 0, summary.TotalFramesExtracted)
	require.Equal(t, StatusSkipped, reports[0].Status)
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &fake_extractor{}
	_, reports := NewBatch(fake, nil).Run(ctx, []Job{{Source: "a.gif", Name: "a"}, {Source: "b.gif", Name: "b"}})
	require.Empty(t, fake.calls)
	require.Equal(t, 2, Count(reports, StatusPending))
}

func TestBatchWithExtractor(t *testing.T) {
	tdir := t.TempDir()
	sprites_dir, frames_dir := filepath.Join(tdir, "sprites"), filepath.Join(tdir, "sprite_frames")
	testutil.WriteSprite(t, filepath.Join(sprites_dir, "walk", "Link (Back).gif"), testutil.Sprite{Width: 16, Height: 16, Frames: 4, Delay: 12})
	testutil.WriteSprite(t, filepath.Join(sprites_dir, "walk", "Link (Front)1.gif"), testutil.Sprite{Width: 16, Height: 24, Frames: 2, Delay: 10})
	testutil.WriteFile(t, filepath.Join(sprites_dir, "attackSword", "corrupt.gif"), []byte("GIF89a not really"))
	jobs := []Job{
		{Source: filepath.Join(sprites_dir, "walk", "Link (Back).gif"), Name: "link_walk_back", OutputDir: filepath.Join(frames_dir, "walk")},
		{Source: filepath.Join(sprites_dir, "walk", "Link (Front)1.gif"), Name: "link_walk_front", OutputDir: filepath.Join(frames_dir, "walk")},
		{Source: filepath.Join(sprites_dir, "walk", "Link (Left)1.gif"), Name: "link_walk_left", OutputDir: filepath.Join(frames_dir, "walk")},
		{Source: filepath.Join(sprites_dir, "attackSword", "corrupt.gif"), Name: "link_attack_back", OutputDir: filepath.Join(frames_dir, "attack")},
	}
	summary, reports := NewBatch(NewExtractor(nil), nil).Run(context.Background(), jobs)
	require.Equal(t, 2, Count(reports, StatusSucceeded))
	require.Equal(t, []string{"link_walk_back", "link_walk_front"}, summary.Names())
	require.Equal(t, 6, summary.TotalFramesExtracted)
	check_invariants(t, summary)

	manifest := filepath.Join(frames_dir, "sprites_info.json")
	require.NoError(t, WriteManifest(manifest, summary))
	back, err := ReadManifest(manifest)
	require.NoError(t, err)
	require.Equal(t, summary.Names(), back.Names())
	check_invariants(t, back)

	walk := list_dir(t, filepath.Join(frames_dir, "walk"))
	require.Len(t, walk, 6)
	_, err = os.Stat(filepath.Join(frames_dir, "attack"))
	require.True(t, os.IsNotExist(err), "a corrupt source must not produce any output")
}

func TestBatchObserver(t *testing.T) {
	tdir := t.TempDir()
	fake := &fake_extractor{results: map[string]*SpriteResult{"a": sprite_result("a", 1), "c": sprite_result("c", 2)}}
	jobs := []Job{
		{Source: testutil.WriteFile(t, filepath.Join(tdir, "a.gif"), []byte("x")), Name: "a"},
		{Source: filepath.Join(tdir, "b.gif"), Name: "b"},
		{Source: testutil.WriteFile(t, filepath.Join(tdir, "c.gif"), []byte("x")), Name: "c"},
	}
	var seen []JobReport
	var calls_when_seen []int
	_, reports := NewBatch(fake, nil, WithObserver(func(r JobReport) {
		seen = append(seen, r)
		calls_when_seen = append(calls_when_seen, len(fake.calls))
	})).Run(context.Background(), jobs)
	require.Equal(t, reports, seen)
	require.Equal(t, []int{1, 1, 2}, calls_when_seen, "each report is delivered before the next job starts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seen = nil
	NewBatch(fake, nil, WithObserver(func(r JobReport) { seen = append(seen, r) })).Run(ctx, jobs)
	require.Len(t, seen, 3)
	require.Equal(t, 3, Count(seen, StatusPending))
}
