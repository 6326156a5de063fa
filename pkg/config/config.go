package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"sudoku-api/internal/sudoku/human/chaining"
)

type Config struct {
	JWTSecret   string
	Port        string
	PuzzlesFile string
	Chaining    ChainingConfig `yaml:"chaining"`
}

// ChainingConfig is the YAML-loadable shape of the chaining engine's
// tuning knobs (see chaining.Config). Zero value matches chaining's own
// zero value (deterministic mode, no dynamic/multiple/nishio, level 0).
type ChainingConfig struct {
	Multiple      bool   `yaml:"multiple"`
	Dynamic       bool   `yaml:"dynamic"`
	Nishio        bool   `yaml:"nishio"`
	Level         int    `yaml:"level"`
	Parallel      bool   `yaml:"parallel"`
	NestingLimit  int    `yaml:"nesting_limit"`
	NumThreads    int    `yaml:"num_threads"`
	Mode          string `yaml:"mode"` // "deterministic" or "legacy"
	DisableYLinks bool   `yaml:"disable_y_links"`
}

// ToEngineConfig converts the YAML-facing shape into chaining.Config.
func (c ChainingConfig) ToEngineConfig() chaining.Config {
	mode := chaining.ModeDeterministic
	if c.Mode == "legacy" {
		mode = chaining.ModeLegacy
	}
	return chaining.Config{
		Multiple:      c.Multiple,
		Dynamic:       c.Dynamic,
		Nishio:        c.Nishio,
		Level:         c.Level,
		Parallel:      c.Parallel,
		NestingLimit:  c.NestingLimit,
		NumThreads:    c.NumThreads,
		Mode:          mode,
		DisableYLinks: c.DisableYLinks,
	}
}

// fileConfig is the subset of Config that may come from a YAML file,
// loaded before environment variables are applied on top.
type fileConfig struct {
	Port        string         `yaml:"port"`
	PuzzlesFile string         `yaml:"puzzles_file"`
	Chaining    ChainingConfig `yaml:"chaining"`
}

// Load loads configuration from an optional YAML file (path named by
// SUDOKU_CONFIG_FILE) layered under environment variables, which always
// win when set. Returns an error if JWT_SECRET is not set or equals
// "changeme".
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	if jwtSecret == "" {
		return nil, errors.New("SECURITY ERROR: JWT_SECRET environment variable is required but not set")
	}

	if jwtSecret == "changeme" {
		return nil, errors.New("SECURITY ERROR: JWT_SECRET cannot be 'changeme' - please set a secure secret")
	}

	if len(jwtSecret) < 32 {
		return nil, errors.New("SECURITY ERROR: JWT_SECRET must be at least 32 characters long")
	}

	file, err := loadFileConfig(os.Getenv("SUDOKU_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		JWTSecret:   jwtSecret,
		Port:        getEnv("PORT", file.Port, "8080"),
		PuzzlesFile: getEnv("PUZZLES_FILE", file.PuzzlesFile, "/data/puzzles.json"),
		Chaining:    file.Chaining,
	}

	applyChainingEnvOverrides(&cfg.Chaining)

	return cfg, nil
}

// loadFileConfig reads and parses the YAML config file at path, if path
// is non-empty. A missing or empty path is not an error: callers get the
// zero-value fileConfig and fall through to defaults/env vars.
func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

// applyChainingEnvOverrides lets individual chaining settings be tuned
// without editing the YAML file, e.g. for a one-off deployment.
func applyChainingEnvOverrides(c *ChainingConfig) {
	if v := os.Getenv("CHAINING_LEVEL"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			c.Level = level
		}
	}
	if v := os.Getenv("CHAINING_NUM_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.NumThreads = n
		}
	}
	if v := os.Getenv("CHAINING_DYNAMIC"); v != "" {
		c.Dynamic = v == "true" || v == "1"
	}
	if v := os.Getenv("CHAINING_MODE"); v != "" {
		c.Mode = v
	}
}

func getEnv(key string, fileValue, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}
