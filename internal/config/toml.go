// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Preview PreviewConfig `toml:"preview"`
	Export  ExportConfig  `toml:"export"`
	Catalog CatalogConfig `toml:"catalog"`
}

// PreviewConfig maps preview and sample-row settings.
type PreviewConfig struct {
	Locale   *string `toml:"locale"`
	Generate *int    `toml:"generate"`
	Seed     *int64  `toml:"seed"`
}

// ExportConfig maps export hand-off settings.
type ExportConfig struct {
	Dir *string `toml:"dir"`
}

// CatalogConfig replaces the built-in schema when fields are listed.
type CatalogConfig struct {
	Fields []FieldConfig `toml:"field"`
}

// FieldConfig is one [[catalog.field]] entry.
type FieldConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// BuildCatalog returns the configured schema, or the built-in one when no
// fields are listed.
func (c FileConfig) BuildCatalog() (*catalog.Catalog, error) {
	if len(c.Catalog.Fields) == 0 {
		return catalog.Default(), nil
	}
	fields := make([]model.Field, 0, len(c.Catalog.Fields))
	for i, fc := range c.Catalog.Fields {
		t, err := model.ParseSemanticType(fc.Type)
		if err != nil {
			return nil, fmt.Errorf("catalog field %d (%s): %w", i+1, fc.ID, err)
		}
		fields = append(fields, model.Field{ID: fc.ID, Name: fc.Name, Type: t})
	}
	cat, err := catalog.New(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return cat, nil
}
