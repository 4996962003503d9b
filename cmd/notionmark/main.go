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
// notionmark converts documents written in the notionmark Markdown dialect
// into Notion blocks, HTML, or a terminal preview.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"zombiezen.com/go/notionmark/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// app is the state shared by every subcommand.
type app struct {
	configFile string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// flagKeys maps command-line flags to the configuration keys they override.
var flagKeys = map[string]string{
	"nfc":          "parse.normalize_unicode",
	"front-matter": "parse.front_matter",
	"indent":       "output.indent",
	"children":     "output.children",
	"ignore-color": "output.ignore_color",
}

func newRootCmd() *cobra.Command {
	a := new(app)
	rootCmd := &cobra.Command{
		Use:   "notionmark",
		Short: "Convert notionmark documents to Notion blocks",
		Long: `notionmark reads a document written in a small line-oriented Markdown
dialect and converts every line into one Notion block.

Input is read from the file named by the first argument,
or from standard input when no file (or "-") is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./notionmark.yaml or ~/.config/notionmark/notionmark.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages to stderr")
	rootCmd.PersistentFlags().Bool("nfc", false, "normalize input to Unicode NFC before parsing")
	rootCmd.PersistentFlags().Bool("front-matter", true, "read a leading YAML front matter block")

	rootCmd.AddCommand(
		newBlocksCmd(a),
		newHTMLCmd(a),
		newFmtCmd(a),
		newPreviewCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration for cmd and sets up logging.
func (a *app) setup(cmd *cobra.Command) error {
	v := config.NewViper(a.configFile)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "path", used)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("notionmark failed", "error", err)
		os.Exit(1)
	}
}
