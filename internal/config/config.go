// Package config reads the settings file. Anything not in the file
// keeps its default. The command line and environment go on top of
// this, in cmd/tortoize.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultName is looked for in the user's config directory.
const DefaultName = "tortoize.toml"

// Plot is how pictures are drawn.
type Plot struct {
	Width    int  `toml:"width"`
	Height   int  `toml:"height"`
	LogScale bool `toml:"log_scale"`
}

// Config is everything the settings file can hold.
type Config struct {
	DataDir   string
	SourceDir string
	Output    string // "" or "-" for stdout
	Workers   int
	Timeout   time.Duration // 0 for none
	Plot      Plot
}

type fileConfig struct {
	DataDir   string `toml:"data_dir"`
	SourceDir string `toml:"source_dir"`
	Output    string `toml:"output"`
	Workers   int    `toml:"workers"`
	Timeout   string `toml:"timeout"`
	Plot      Plot   `toml:"plot"`
}

// Default is what we use with no file.
func Default() Config {
	return Config{
		DataDir:   "data",
		SourceDir: "src",
		Workers:   runtime.NumCPU(),
		Plot:      Plot{Width: 480, Height: 480},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if und := meta.Undecoded(); len(und) != 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %s", path, und[0])
	}
	if meta.IsDefined("data_dir") {
		cfg.DataDir = strings.TrimSpace(raw.DataDir)
	}
	if meta.IsDefined("source_dir") {
		cfg.SourceDir = strings.TrimSpace(raw.SourceDir)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("config %s: parse timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if meta.IsDefined("plot", "width") {
		cfg.Plot.Width = raw.Plot.Width
	}
	if meta.IsDefined("plot", "height") {
		cfg.Plot.Height = raw.Plot.Height
	}
	if meta.IsDefined("plot", "log_scale") {
		cfg.Plot.LogScale = raw.Plot.LogScale
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, but a missing file just gives the defaults.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the numbers make sense.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("negative timeout %v", cfg.Timeout)
	}
	if cfg.Plot.Width < 100 || cfg.Plot.Height < 100 {
		return fmt.Errorf("plot must be at least 100x100, got %dx%d", cfg.Plot.Width, cfg.Plot.Height)
	}
	return nil
}

// WriteTemplate writes an example file to path. An existing file is
// only replaced if overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o644)
}

// Template is an example settings file with the defaults written out.
const Template = `# tortoize settings
data_dir = "data"        # rama-data.bin and torsion-data.bin
source_dir = "src"       # histogram text files for tortoize build
output = "-"             # where score writes its report
workers = 4              # models scored at once
timeout = "0s"           # give up after this long, 0 for never

[plot]
width = 480
height = 480
log_scale = false
`
