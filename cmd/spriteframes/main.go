package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/spriteframes/spriteframes"
	"github.com/spriteframes/spriteframes/internal/config"
	"github.com/spriteframes/spriteframes/internal/logging"
	"github.com/spriteframes/spriteframes/internal/publish"
	"github.com/spriteframes/spriteframes/sprites"
)

var _ = fmt.Print

type Args struct {
	Jobs            string `arg:"--jobs" help:"YAML file listing the sprites to extract"`
	Scan            bool   `arg:"--scan" help:"extract every GIF found in <sprites-dir>/<category>/"`
	SpritesDir      string `arg:"--sprites-dir" help:"directory containing the sprite sources"`
	FramesDir       string `arg:"--frames-dir" help:"directory the frames are written to"`
	Manifest        string `arg:"--manifest" help:"manifest file name, relative to the frames directory"`
	UniformDuration bool   `arg:"--uniform-duration" help:"give every frame the duration of the first frame"`
	NoAutoOrient    bool   `arg:"--no-auto-orient" help:"ignore the EXIF orientation of JPEG and TIFF sources"`
	Publish         bool   `arg:"--publish" help:"upload frames and manifest to the configured bucket"`
	Verbose         bool   `arg:"-v,--verbose" help:"log every saved frame"`
	NoColor         bool   `arg:"--no-color" help:"disable colors in log output"`
}

func (Args) Version() string {
	return "spriteframes " + spriteframes.Version.String()
}

func (Args) Description() string {
	return "Extracts the frames of animated sprites into transparent PNG files and writes a JSON manifest describing them.\n" +
		"Settings not given on the command line are read from SPRITEFRAMES_* environment variables and a .env file."
}

// apply overrides configuration with the flags given on the command line.
func (a *Args) apply(cfg *config.Config) {
	if a.Jobs != "" {
		cfg.JobsFile = a.Jobs
	}
	if a.SpritesDir != "" {
		cfg.SpritesDir = a.SpritesDir
	}
	if a.FramesDir != "" {
		cfg.FramesDir = a.FramesDir
	}
	if a.Manifest != "" {
		cfg.Manifest = a.Manifest
	}
	cfg.Scan = cfg.Scan || a.Scan
	cfg.UniformDuration = cfg.UniformDuration || a.UniformDuration
	cfg.NoColor = cfg.NoColor || a.NoColor
	if a.NoAutoOrient {
		cfg.AutoOrient = false
	}
	if a.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}
}

// run executes a batch and returns the process exit status. environ nil
// means the process environment.
func run(ctx context.Context, args *Args, environ map[string]string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(environ)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	args.apply(cfg)
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if args.Publish && !cfg.Publish.Enabled() {
		fmt.Fprintf(stderr, "--publish requires %sPUBLISH_ENDPOINT to be set\n", config.EnvPrefix)
		return 1
	}
	logger := logging.New(stderr, cfg.LogLevel, cfg.NoColor)
	if err = spriteframes.CheckCodecs(); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "This build of spriteframes cannot read GIF or write PNG files. Rebuild it with the image/gif and image/png packages linked in.")
		return 1
	}
	jobs, err := cfg.Jobs()
	if err != nil {
		fmt.Fprintln(stderr, "cannot load the list of sprites:", err)
		return 1
	}
	level, _ := cfg.CompressionLevel()

	print_header(stdout, jobs)
	extractor := sprites.NewExtractor(logger,
		sprites.WithUniformDuration(cfg.UniformDuration),
		sprites.WithDecodeOptions(spriteframes.AutoOrientation(cfg.AutoOrient)),
		sprites.WithEncodeOptions(spriteframes.PNGCompressionLevel(level)),
	)
	batch := sprites.NewBatch(extractor, logger, sprites.WithObserver(func(r sprites.JobReport) {
		print_report(stdout, r)
	}))
	summary, reports := batch.Run(ctx, jobs)
	fmt.Fprintln(stdout)
	if ctx.Err() != nil {
		logger.Warn("interrupted, the manifest lists only the sprites extracted so far")
	}

	manifest := cfg.ManifestPath()
	if err = sprites.WriteManifest(manifest, summary); err != nil {
		fmt.Fprintln(stderr, "cannot write manifest:", err)
		return 1
	}
	print_summary(stdout, summary, manifest)
	print_guidance(stdout, cfg.Frames(), manifest, reports)

	if args.Publish {
		p := cfg.Publish
		store, err := publish.NewMinioStore(publish.MinioConfig{
			Endpoint: p.Endpoint, AccessKey: p.AccessKey, SecretKey: p.SecretKey, UseSSL: p.UseSSL, Bucket: p.Bucket,
		})
		if err != nil {
			logger.Error("cannot publish", "error", err)
			return 0
		}
		n, err := publish.NewPublisher(store, p.Prefix, logger).Publish(ctx, cfg.Frames(), manifest, reports)
		if err != nil {
			logger.Error("publishing failed", "bucket", p.Bucket, "uploaded", n, "error", err)
		} else {
			logger.Info("published", "bucket", p.Bucket, "objects", n)
		}
	}
	return 0
}

func main() {
	var args Args
	arg.MustParse(&args)
	_ = godotenv.Load()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	code := run(ctx, &args, nil, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
