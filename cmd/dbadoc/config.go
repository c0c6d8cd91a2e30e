package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgonek/docbook-asciidoc-converter/converter"
	"gopkg.in/yaml.v3"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetReadable = "readable"
	presetLossy    = "lossy"
)

func presetConfig(preset string) (converter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return converter.Config{}, nil
	case presetStrict:
		return converter.Config{
			UnknownElements: converter.UnknownError,
			ResolutionMode:  converter.ResolutionStrict,
		}, nil
	case presetReadable:
		return converter.Config{
			SentencePerLine:  true,
			LiteralAdjacency: converter.AdjacencyConstrained,
		}, nil
	case presetLossy:
		return converter.Config{
			UnknownElements: converter.UnknownSkip,
		}, nil
	default:
		return converter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, readable, lossy)", preset)
	}
}

// fileConfig is the YAML form of converter.Config. Unset fields keep the
// preset's value.
type fileConfig struct {
	IDStyle          string            `yaml:"idStyle"`
	Attributes       map[string]string `yaml:"attributes"`
	SentencePerLine  *bool             `yaml:"sentencePerLine"`
	LiteralAdjacency string            `yaml:"literalAdjacency"`
	HeadingOffset    *int              `yaml:"headingOffset"`
	LanguageMap      map[string]string `yaml:"languageMap"`
	UnknownElements  string            `yaml:"unknownElements"`
	ResolutionMode   string            `yaml:"resolutionMode"`
}

func loadConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg converter.Config) converter.Config {
	if fc.IDStyle != "" {
		cfg.IDStyle = converter.IDStyle(fc.IDStyle)
	}
	if fc.SentencePerLine != nil {
		cfg.SentencePerLine = *fc.SentencePerLine
	}
	if fc.LiteralAdjacency != "" {
		cfg.LiteralAdjacency = converter.AdjacencyStyle(fc.LiteralAdjacency)
	}
	if fc.HeadingOffset != nil {
		cfg.HeadingOffset = *fc.HeadingOffset
	}
	if fc.UnknownElements != "" {
		cfg.UnknownElements = converter.UnknownPolicy(fc.UnknownElements)
	}
	if fc.ResolutionMode != "" {
		cfg.ResolutionMode = converter.ResolutionMode(fc.ResolutionMode)
	}
	cfg.Attributes = mergeAttributes(cfg.Attributes, fc.Attributes)
	if len(fc.LanguageMap) > 0 {
		languages := make(map[string]string, len(cfg.LanguageMap)+len(fc.LanguageMap))
		for k, v := range cfg.LanguageMap {
			languages[k] = v
		}
		for k, v := range fc.LanguageMap {
			languages[k] = v
		}
		cfg.LanguageMap = languages
	}
	return cfg
}

// loadAttributesFile reads a flat YAML mapping of attribute names to values.
func loadAttributesFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attributes file: %w", err)
	}
	var attrs map[string]string
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("parsing attributes file %s: %w", path, err)
	}
	return attrs, nil
}

func mergeAttributes(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	merged := make(map[string]string, len(dst)+len(src))
	for k, v := range dst {
		merged[k] = v
	}
	for k, v := range src {
		merged[k] = v
	}
	return merged
}

// resolveConfig layers the preset, the config file, the attributes file and
// finally the individual flags.
func (c *cli) resolveConfig() (converter.Config, error) {
	cfg, err := presetConfig(c.Preset)
	if err != nil {
		return converter.Config{}, err
	}

	if c.Config != "" {
		fc, err := loadConfigFile(c.Config)
		if err != nil {
			return converter.Config{}, err
		}
		cfg = fc.apply(cfg)
	}
	if c.AttributesFile != "" {
		attrs, err := loadAttributesFile(c.AttributesFile)
		if err != nil {
			return converter.Config{}, err
		}
		cfg.Attributes = mergeAttributes(cfg.Attributes, attrs)
	}
	cfg.Attributes = mergeAttributes(cfg.Attributes, c.Attribute)

	if c.PreserveIDs {
		cfg.IDStyle = converter.IDPreserve
	}
	if c.SentencePerLine {
		cfg.SentencePerLine = true
	}
	if c.Strict {
		cfg.UnknownElements = converter.UnknownError
		cfg.ResolutionMode = converter.ResolutionStrict
	}

	return cfg, nil
}
