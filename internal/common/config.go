package common

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/joseph-ayodele/lap-analysis/constants"
)

// EnvPrefix is stripped from environment variables before mapping them to config keys.
const EnvPrefix = "LAPCHART_"

const maxConfigFileSize = 1024 * 1024 // 1MB

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration
type Config struct {
	Document     string        `koanf:"document"`
	Season       string        `koanf:"season"`
	RosterFile   string        `koanf:"roster_file"`
	ExpectedLaps int           `koanf:"expected_laps"`
	Riders       []string      `koanf:"riders"`
	SkipFirstLap bool          `koanf:"skip_first_lap"`
	Extract      ExtractConfig `koanf:"extract"`
	Render       RenderConfig  `koanf:"render"`
	Log          LogConfig     `koanf:"log"`
}

// ExtractConfig holds page text and lap scanning configuration
type ExtractConfig struct {
	Backend   string `koanf:"backend"`
	Pdftotext string `koanf:"pdftotext"`
	MaxPages  int    `koanf:"max_pages"`
	Boundary  string `koanf:"boundary"`
}

// RenderConfig holds chart output configuration
type RenderConfig struct {
	Format string `koanf:"format"`
	Output string `koanf:"output"`
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
	Open   bool   `koanf:"open"`
	Viewer string `koanf:"viewer"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// configSections are the nested config blocks; env keys starting with one of
// these map to "<section>.<rest>", everything else stays top-level.
var configSections = []string{"extract", "render", "log"}

// LoadConfig loads the embedded defaults, then the optional YAML file at path,
// then LAPCHART_* environment variables.
//
//	LAPCHART_RENDER_FORMAT=tui   -> render.format
//	LAPCHART_EXPECTED_LAPS=25    -> expected_laps
//	LAPCHART_RIDERS=89,93        -> riders
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, NewAppError(CodeConfig, "read config file", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, NewAppError(CodeConfig, fmt.Sprintf("parse config file %s", path), err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, NewAppError(CodeConfig, "unmarshal config", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	return io.ReadAll(f)
}

func envKeyValue(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(name, section+"_"); ok {
			name = section + "." + rest
			break
		}
	}
	if name == "riders" {
		return name, splitList(value)
	}
	return name, value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalize canonicalizes loose values (season aliases, format synonyms, case).
func (c *Config) normalize() {
	if s, ok := constants.CanonicalizeSeason(c.Season); ok {
		c.Season = string(s)
	}
	if f, ok := constants.ParseRenderFormat(c.Render.Format); ok {
		c.Render.Format = string(f)
	}
	c.Extract.Backend = strings.ToLower(strings.TrimSpace(c.Extract.Backend))
	c.Extract.Boundary = strings.ToLower(strings.TrimSpace(c.Extract.Boundary))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	for i, r := range c.Riders {
		c.Riders[i] = strings.TrimSpace(r)
	}
}

// SetRiders replaces the selection from a comma separated list.
func (c *Config) SetRiders(list string) {
	c.Riders = splitList(list)
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	c.normalize()
	v := NewValidator()
	v.Field("document", c.Document, Required)
	if c.RosterFile == "" {
		v.Field("season", c.Season, OneOf(constants.Seasons()...))
	}
	v.Field("expected_laps", c.ExpectedLaps, Positive)
	v.Field("riders", c.Riders, Required, RiderIDs)
	v.Field("extract.backend", c.Extract.Backend, OneOf(constants.BackendNative, constants.BackendPdftotext))
	v.Field("extract.max_pages", c.Extract.MaxPages, NonNegative)
	v.Field("extract.boundary", c.Extract.Boundary, OneOf(constants.BoundaryLeaderRow, constants.BoundaryRiderRepeat))
	v.Field("render.format", c.Render.Format, OneOf(constants.RenderFormats()...))
	v.Field("render.width", c.Render.Width, Positive)
	v.Field("render.height", c.Render.Height, Positive)
	v.Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error"))
	v.Field("log.format", c.Log.Format, OneOf("text", "json"))
	return v.Err()
}
