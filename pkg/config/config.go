// Package config loads lockgraph run settings.
//
// Settings come from a single file whose format is chosen by extension:
//
//   - .toml: decoded with github.com/BurntSushi/toml
//   - .yaml, .yml: decoded with gopkg.in/yaml.v3
//   - anything else: two-column CSV, one "key,value" pair per line
//
// All formats use the same keys. Three are required:
//
//	graphviz_path   layout executable, or "builtin" for the embedded renderer
//	package_path    directory holding package.json and package-lock.json
//	output_path     image to write; the DOT file is written next to it
//
// Optional keys are rankdir (TB, LR, BT, RL), strict (bool), format (image
// format overriding the output extension) and json_path (node-link export).
package config

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lockgraph/pkg/errors"
)

// Setting keys.
const (
	KeyGraphvizPath = "graphviz_path"
	KeyPackagePath  = "package_path"
	KeyOutputPath   = "output_path"
	KeyRankDir      = "rankdir"
	KeyStrict       = "strict"
	KeyFormat       = "format"
	KeyJSONPath     = "json_path"
)

// BuiltinRenderer selects the in-process Graphviz renderer.
const BuiltinRenderer = "builtin"

// DefaultRankDir lays the graph out left to right.
const DefaultRankDir = "LR"

// ValidRankDirs is the set of accepted layout directions.
var ValidRankDirs = []string{"TB", "LR", "BT", "RL"}

// ValidFormats is the set of accepted image formats.
var ValidFormats = []string{"png", "svg", "pdf", "jpg", "gif"}

// Config holds the settings of one run.
type Config struct {
	GraphvizPath string `toml:"graphviz_path" yaml:"graphviz_path"`
	PackagePath  string `toml:"package_path" yaml:"package_path"`
	OutputPath   string `toml:"output_path" yaml:"output_path"`
	RankDir      string `toml:"rankdir" yaml:"rankdir"`
	Strict       bool   `toml:"strict" yaml:"strict"`
	Format       string `toml:"format" yaml:"format"`
	JSONPath     string `toml:"json_path" yaml:"json_path"`
}

// Builtin reports whether the embedded renderer was requested.
func (c Config) Builtin() bool {
	return strings.EqualFold(c.GraphvizPath, BuiltinRenderer)
}

// Load reads, validates and normalizes the config file at path.
// Relative package, output and JSON paths resolve against the directory of
// the config file. Every failure is an ErrCodeConfig error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "read config %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "decode %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "decode %s", path)
		}
	default:
		cfg, err = ParseCSV(bytes.NewReader(data))
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "decode %s", path)
		}
	}

	cfg.normalize(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseCSV reads two-column key,value rows. Rows with any other number of
// columns are skipped and unknown keys are ignored. Keys and values are
// trimmed of surrounding whitespace.
func ParseCSV(r io.Reader) (Config, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	values := make(map[string]string)
	for {
		row, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Config{}, err
		}
		if len(row) != 2 {
			continue
		}
		values[strings.TrimSpace(row[0])] = strings.TrimSpace(row[1])
	}

	cfg := Config{
		GraphvizPath: values[KeyGraphvizPath],
		PackagePath:  values[KeyPackagePath],
		OutputPath:   values[KeyOutputPath],
		RankDir:      values[KeyRankDir],
		Format:       values[KeyFormat],
		JSONPath:     values[KeyJSONPath],
	}
	if s := values[KeyStrict]; s != "" {
		strict, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "invalid %s value %q", KeyStrict, s)
		}
		cfg.Strict = strict
	}
	return cfg, nil
}

func (c *Config) normalize(baseDir string) {
	c.GraphvizPath = strings.TrimSpace(c.GraphvizPath)
	c.PackagePath = resolve(baseDir, strings.TrimSpace(c.PackagePath))
	c.OutputPath = resolve(baseDir, strings.TrimSpace(c.OutputPath))
	c.JSONPath = resolve(baseDir, strings.TrimSpace(c.JSONPath))
	if c.GraphvizPath != "" && strings.ContainsRune(c.GraphvizPath, filepath.Separator) {
		c.GraphvizPath = resolve(baseDir, c.GraphvizPath)
	}

	c.RankDir = strings.ToUpper(strings.TrimSpace(c.RankDir))
	if c.RankDir == "" {
		c.RankDir = DefaultRankDir
	}
	c.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Format), "."))
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// Validate checks that required keys are present and optional keys hold
// accepted values.
func (c Config) Validate() error {
	required := map[string]string{
		KeyGraphvizPath: c.GraphvizPath,
		KeyPackagePath:  c.PackagePath,
		KeyOutputPath:   c.OutputPath,
	}
	var missing []string
	for k, v := range required {
		if v == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.New(errors.ErrCodeConfig, "missing required settings: %s", strings.Join(missing, ", "))
	}

	if c.RankDir != "" && !slices.Contains(ValidRankDirs, c.RankDir) {
		return errors.New(errors.ErrCodeConfig, "invalid %s %q (valid: %s)", KeyRankDir, c.RankDir, strings.Join(ValidRankDirs, ", "))
	}
	if c.Format != "" && !slices.Contains(ValidFormats, c.Format) {
		return errors.New(errors.ErrCodeConfig, "invalid %s %q (valid: %s)", KeyFormat, c.Format, strings.Join(ValidFormats, ", "))
	}
	return nil
}
