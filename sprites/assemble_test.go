package sprites

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spriteframes/spriteframes"
	"github.com/spriteframes/spriteframes/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	tdir := t.TempDir()
	src := testutil.WriteSprite(t, filepath.Join(tdir, "walk.gif"), testutil.Sprite{
		Width: 6, Height: 4, Frames: 3, Delays: []int{5, 10, 20},
	})
	out := filepath.Join(tdir, "frames")
	res, err := NewExtractor(nil).Extract(context.Background(), Job{Source: src, Name: "walk", OutputDir: out})
	require.NoError(t, err)

	anim, err := Assemble(out, res)
	require.NoError(t, err)
	require.Len(t, anim.Frames, 3)
	require.Equal(t, uint32(6), anim.Metadata.PixelWidth)
	require.Equal(t, uint32(4), anim.Metadata.PixelHeight)

	var buf bytes.Buffer
	require.NoError(t, anim.EncodeAsPNG(&buf))
	back, err := spriteframes.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, back.Frames, 3)
	var got []time.Duration
	for _, f := range back.Frames {
		got = append(got, f.Delay)
	}
	require.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}, got)
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble(t.TempDir(), &SpriteResult{Name: "empty"})
	require.Error(t, err)

	dir := t.TempDir()
	r := sprite_result("gone", 2)
	_, err = Assemble(dir, r)
	require.ErrorIs(t, err, os.ErrNotExist)
}
