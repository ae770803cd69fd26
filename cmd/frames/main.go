package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spriteframes/spriteframes/internal/config"
	"github.com/spriteframes/spriteframes/internal/logging"
	"github.com/spriteframes/spriteframes/sprites"
)

var _ = fmt.Print

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) == 1 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/frames input-file [sprite-name] [output-dir]")
		os.Exit(1)
	}
	job := sprites.Job{Source: os.Args[1], Name: config.SpriteName(filepath.Base(os.Args[1]))}
	if len(os.Args) > 2 {
		job.Name = os.Args[2]
	}
	job.OutputDir = strings.TrimSuffix(os.Args[1], filepath.Ext(os.Args[1])) + "-frames"
	if len(os.Args) > 3 {
		job.OutputDir = os.Args[3]
	}
	extractor := sprites.NewExtractor(logging.New(os.Stderr, nil, false))
	res, err := extractor.Extract(context.Background(), job)
	if err != nil {
		return
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(b))
	fmt.Fprintf(os.Stderr, "Frames extracted to %s\n", job.OutputDir)
}
