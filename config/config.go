// Package config loads the report settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rickbassham/fitsreport/extract"
	"github.com/rickbassham/fitsreport/report"
	"github.com/rickbassham/fitsreport/schema"
	"github.com/rickbassham/fitsreport/walk"
)

type Config struct {
	// Root is the directory scanned and where the report is written.
	Root string `yaml:"root"`
	// Pattern is the glob, relative to Root, selecting image files.
	Pattern string `yaml:"pattern"`
	// Exclude lists doublestar patterns, relative to Root, to leave out.
	Exclude []string `yaml:"exclude"`

	ImageTypeKey string `yaml:"image_type_key"`
	ImageType    string `yaml:"image_type"`

	// Keywords is the ordered column list. file_name is the synthetic
	// file name column.
	Keywords     []string `yaml:"keywords"`
	TimestampKey string   `yaml:"timestamp_key"`

	// Date is the report date policy: last, earliest or latest.
	Date   string `yaml:"date"`
	Strict bool   `yaml:"strict"`
}

func Default() *Config {
	return &Config{
		Root:         ".",
		Pattern:      walk.DefaultPattern,
		ImageTypeKey: extract.DefaultImageTypeKey,
		ImageType:    extract.DefaultImageType,
		Keywords:     append([]string(nil), schema.DefaultKeywords...),
		TimestampKey: schema.DateObsKey,
		Date:         string(report.Last),
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root is required")
	}

	if c.Pattern == "" {
		return errors.New("pattern is required")
	}

	if c.ImageTypeKey == "" {
		return errors.New("image_type_key is required")
	}

	if _, err := report.ParseDatePolicy(c.Date); err != nil {
		return err
	}

	if _, err := c.Schema(); err != nil {
		return err
	}

	return nil
}

// Schema builds the report schema from Keywords and TimestampKey.
func (c *Config) Schema() (schema.Schema, error) {
	return schema.New(c.Keywords, c.TimestampKey)
}
