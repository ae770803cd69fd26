package main

import (
	"fmt"
	"os"

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
	if len(os.Args) < 4 || len(os.Args) > 5 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/preview manifest frames-dir sprite-name [output-file]")
		os.Exit(1)
	}
	summary, err := sprites.ReadManifest(os.Args[1])
	if err != nil {
		return
	}
	name := os.Args[3]
	r, found := summary.Get(name)
	if !found {
		err = fmt.Errorf("no sprite named %s in %s", name, os.Args[1])
		return
	}
	img, err := sprites.Assemble(os.Args[2], r)
	if err != nil {
		return
	}
	ext := ".png"
	if len(img.Frames) > 1 {
		ext = ".apng"
	}
	output_file := name + ext
	if len(os.Args) == 5 {
		output_file = os.Args[4]
	}
	out, err := os.OpenFile(output_file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return
	}
	defer out.Close()
	if err = img.EncodeAsPNG(out); err == nil {
		fmt.Println("Preview saved to:", output_file)
	}
}
