package scadparse

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/scadparse/parser"
)

// Config is the host-level configuration for a scadparse installation.
// DefaultParserOptions is the parser.Options the CLI passes to ParseFile.
// OpenscadPath and CacheEnabled are loaded (OpenscadPath entries with
// environment expansion) but are not read by the library resolver or the
// file façade: Resolve searches only OPENSCADPATH and the platform
// defaults, and ParseFile always uses the AST cache.
type Config struct {
	OpenscadPath         []string       `yaml:"openscad_path"`
	DefaultParserOptions parser.Options `yaml:"default_parser_options"`
	CacheEnabled         bool           `yaml:"cache_enabled"`
}

// LoadConfig loads configuration from configPath. If the file doesn't
// exist, a default Config is returned rather than an error. String
// fields go through `${VAR}`/`$VAR` environment expansion after strict
// YAML decoding, matching the teacher's config.go convention.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		expandConfigEnvVars(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	applyDefaults(cfg)
	expandConfigEnvVars(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		DefaultParserOptions: parser.DefaultOptions,
		CacheEnabled:         true,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DefaultParserOptions == (parser.Options{}) {
		cfg.DefaultParserOptions = parser.DefaultOptions
	}
}

func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}

var (
	envBraceRe = regexp.MustCompile(`\$\{([^}]+)\}`)
	envWordRe  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands `${VAR}` and `$VAR` occurrences in s using the
// process environment.
func expandEnvVars(s string) string {
	s = envBraceRe.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
	return envWordRe.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(cfg *Config) {
	for i, p := range cfg.OpenscadPath {
		cfg.OpenscadPath[i] = expandEnvVars(p)
	}
}
