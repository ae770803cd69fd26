// Package config reads the settings of the sprite frame extractor from the
// environment and builds the list of jobs to run.
package config

import (
	"fmt"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

var _ = fmt.Print

// EnvPrefix is prepended to the name of every environment variable.
const EnvPrefix = "SPRITEFRAMES_"

// Publish holds the settings of the optional upload of extracted frames to
// an S3 compatible bucket. Publishing is disabled when Endpoint is empty.
type Publish struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	Bucket    string `env:"BUCKET"  envDefault:"sprite-frames"`
	Prefix    string `env:"PREFIX"`
}

func (p Publish) Enabled() bool { return p.Endpoint != "" }

type Config struct {
	BaseDir    string `env:"BASE_DIR"    envDefault:"."`
	SpritesDir string `env:"SPRITES_DIR" envDefault:"sprites"`
	FramesDir  string `env:"FRAMES_DIR"  envDefault:"sprite_frames"`
	Manifest   string `env:"MANIFEST"    envDefault:"sprites_info.json"`

	JobsFile        string `env:"JOBS_FILE"`
	Scan            bool   `env:"SCAN"             envDefault:"false"`
	UniformDuration bool   `env:"UNIFORM_DURATION" envDefault:"false"`
	PNGCompression  string `env:"PNG_COMPRESSION"  envDefault:"default"`
	AutoOrient      bool   `env:"AUTO_ORIENT"      envDefault:"true"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	NoColor  bool       `env:"NO_COLOR"  envDefault:"false"`

	Publish Publish `envPrefix:"PUBLISH_"`
}

var compression_levels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.CompressionLevel(); err != nil {
		return err
	}
	if c.Manifest == "" {
		return fmt.Errorf("the manifest file name must not be empty")
	}
	if c.Publish.Enabled() && c.Publish.Bucket == "" {
		return fmt.Errorf("publishing to %s requires a bucket", c.Publish.Endpoint)
	}
	return nil
}

func (c *Config) CompressionLevel() (png.CompressionLevel, error) {
	if l, ok := compression_levels[strings.ToLower(c.PNGCompression)]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("unknown PNG compression level: %q, must be one of default, none, fast or best", c.PNGCompression)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Sprites is the directory sprite sources are read from.
func (c *Config) Sprites() string { return c.resolve(c.SpritesDir) }

// Frames is the directory extracted frames are written to.
func (c *Config) Frames() string { return c.resolve(c.FramesDir) }

// ManifestPath is where the run summary is written, relative manifest names
// are placed in the frames directory.
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.Frames(), c.Manifest)
}
