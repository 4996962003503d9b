// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
// Package config holds the settings for the notionmark command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Name is the base name of the configuration file, without extension.
const Name = "notionmark"

// EnvPrefix is prepended to environment variable overrides,
// as in NOTIONMARK_LOG_LEVEL or NOTIONMARK_OUTPUT_INDENT.
const EnvPrefix = "NOTIONMARK"

// Config is the effective configuration of the command.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", or "error" (default "info").
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	Parse  ParseConfig  `yaml:"parse" mapstructure:"parse"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ParseConfig holds settings for reading input documents.
type ParseConfig struct {
	// NormalizeUnicode converts each line to NFC before parsing.
	NormalizeUnicode bool `yaml:"normalize_unicode" mapstructure:"normalize_unicode"`

	// FrontMatter enables reading a leading "---" delimited YAML header.
	FrontMatter bool `yaml:"front_matter" mapstructure:"front_matter"`
}

// OutputConfig holds settings for the renderers.
type OutputConfig struct {
	// Indent is the JSON indentation for the blocks command.
	// Empty means compact output.
	Indent string `yaml:"indent" mapstructure:"indent"`

	// Children wraps JSON output in a {"children": [...]} payload.
	Children bool `yaml:"children" mapstructure:"children"`

	// IgnoreColor drops span colors from HTML output.
	IgnoreColor bool `yaml:"ignore_color" mapstructure:"ignore_color"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Parse: ParseConfig{
			FrontMatter: true,
		},
		Output: OutputConfig{
			Indent:   "  ",
			Children: true,
		},
	}
}

// NewViper returns a viper instance that knows every configuration key,
// reads "notionmark.yaml" from the working directory or ~/.config/notionmark,
// and honors NOTIONMARK_* environment variables.
// If file is not empty, it is used as the configuration file instead.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("parse.normalize_unicode", d.Parse.NormalizeUnicode)
	v.SetDefault("parse.front_matter", d.Parse.FrontMatter)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("output.children", d.Output.Children)
	v.SetDefault("output.ignore_color", d.Output.IgnoreColor)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file, if any, and decodes the result.
// A missing configuration file is not an error
// unless it was named explicitly.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

var indentPattern = regexp.MustCompile(`^[ \t]*$`)

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Output),
	)
}

// Validate checks the output settings.
func (c OutputConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Indent, validation.Match(indentPattern).Error("must contain only spaces and tabs")),
	)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
