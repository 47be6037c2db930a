// Package config loads the optional spritepack.toml project file.
//
// Every field is optional. Command-line flags that are explicitly set
// override file values, and file values override built-in defaults.
//
//	[sprite]
//	sources = ["assets/icons"]
//	out = "dist/sprite.png"
//	out_style = "dist/sprite.css"
//	margin = 4
//	arrangement = "compact"
//	compression = "high"
//	retina = true
//
//	[style]
//	prefix = "icon"
//	connector = "-"
//
//	[serve]
//	addr = ":8080"
//	root = "."
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

// FileName is the project file looked up in the working directory.
const FileName = "spritepack.toml"

// Defaults for the serve section.
const (
	DefaultAddr = ":8080"
	DefaultRoot = "."
)

// Config is the parsed project file.
type Config struct {
	Sprite Sprite `toml:"sprite"`
	Style  Style  `toml:"style"`
	Serve  Serve  `toml:"serve"`
}

// Sprite holds generation settings.
type Sprite struct {
	Sources      []string `toml:"sources"`
	Out          string   `toml:"out"`
	OutRetina    string   `toml:"out_retina"`
	OutStyle     string   `toml:"out_style"`
	OutJSON      string   `toml:"out_json"`
	Margin       int      `toml:"margin"`
	Arrangement  string   `toml:"arrangement"`
	Compression  string   `toml:"compression"`
	Interlace    *bool    `toml:"interlace"`
	Retina       *bool    `toml:"retina"`
	Filter       string   `toml:"filter"`
	RetinaFilter string   `toml:"retina_filter"`
	Concurrency  int      `toml:"concurrency"`
}

// Style holds stylesheet settings.
type Style struct {
	Prefix     string `toml:"prefix"`
	Connector  string `toml:"connector"`
	Suffix     string `toml:"suffix"`
	Banner     *bool  `toml:"banner"`
	BannerText string `toml:"banner_text"`
}

// Serve holds HTTP API settings.
type Serve struct {
	Addr string `toml:"addr"`
	Root string `toml:"root"`
}

// Default returns the configuration used without a project file.
func Default() *Config {
	return &Config{
		Sprite: Sprite{
			Arrangement: string(pack.DefaultArrangement),
			Compression: string(raster.DefaultCompression),
		},
		Serve: Serve{Addr: DefaultAddr, Root: DefaultRoot},
	}
}

// Load reads and validates the project file at path. Values missing from
// the file keep their defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the project file in dir, if there is one.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// Validate checks enumerations and patterns.
// Failures carry errors.ErrCodeInvalidConfig with the underlying error as cause.
func (c *Config) Validate() error {
	s := c.Sprite
	if s.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sprite.margin must not be negative: %d", s.Margin)
	}
	if s.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sprite.concurrency must not be negative: %d", s.Concurrency)
	}
	if _, err := pack.ParseArrangement(s.Arrangement); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sprite.arrangement")
	}
	if _, err := raster.ParseCompression(s.Compression); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "sprite.compression")
	}
	for key, pattern := range map[string]string{"sprite.filter": s.Filter, "sprite.retina_filter": s.RetinaFilter} {
		if pattern == "" {
			continue
		}
		if _, err := sprite.GlobFilter(pattern); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
		}
	}
	for key, path := range map[string]string{"sprite.out": s.Out, "sprite.out_retina": s.OutRetina} {
		if path != "" && !strings.EqualFold(filepath.Ext(path), ".png") {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must end in .png: %q", key, path)
		}
	}
	return nil
}
