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
package main

import (
	"io"

	"github.com/spf13/cobra"
	"zombiezen.com/go/notionmark"
)

func newHTMLCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "html [FILE]",
		Short: "Render the input as HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readDocument(cmd, args)
			if err != nil {
				return err
			}
			r := &notionmark.HTMLRenderer{IgnoreColor: a.cfg.Output.IgnoreColor}
			if err := r.Render(cmd.OutOrStdout(), doc.blocks); err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), "\n")
			return err
		},
	}
	c.Flags().Bool("ignore-color", false, "do not emit color classes")
	return c
}
