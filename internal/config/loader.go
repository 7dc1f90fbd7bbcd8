package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the variable holding the YAML config path.
	PathEnv = "ARGMINE_CONFIG"
	// DefaultPath is tried in the working directory when PathEnv is unset.
	DefaultPath = "argmine.yaml"
)

// Load reads the service configuration. Environment variables win over the
// YAML file, which wins over env-default tags. A missing DefaultPath means
// environment only; a missing file named by PathEnv is an error. Relative
// model paths in a YAML file are taken relative to that file.
func Load() (*Config, error) {
	path, explicit := os.Getenv(PathEnv), true
	if path == "" {
		path, explicit = DefaultPath, false
	}

	cfg, err := read(path, explicit)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func read(path string, explicit bool) (*Config, error) {
	var cfg Config

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg.Model.resolve(filepath.Dir(path))
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}
	return &cfg, nil
}

// resolve anchors relative artifact paths at dir.
func (m *ModelConfig) resolve(dir string) {
	for _, p := range []*string{&m.CRFPath, &m.LemmaDictPath, &m.LexiconPath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
