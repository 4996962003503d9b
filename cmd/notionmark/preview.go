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

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"zombiezen.com/go/notionmark/preview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var width int
	c := &cobra.Command{
		Use:   "preview [FILE]",
		Short: "Show the blocks styled for the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readDocument(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			lr := lipgloss.NewRenderer(out)
			if doc.meta.Title != "" {
				title := lr.NewStyle().Bold(true).Underline(true).Render(doc.meta.Title)
				if _, err := io.WriteString(out, title+"\n\n"); err != nil {
					return err
				}
			}
			r := &preview.Renderer{
				Renderer: lr,
				Width:    width,
			}
			return r.Render(out, doc.blocks)
		},
	}
	c.Flags().IntVarP(&width, "width", "w", 0, "wrap lines to this many columns (0 disables wrapping)")
	return c
}
