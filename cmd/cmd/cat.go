// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func DefineCatCommand() *cobra.Command {
	var useMmap bool

	cmd := &cobra.Command{
		Use:          "cat <image-path> <path>",
		Short:        "Stream a file's contents to stdout",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, err := loadSession(args[0], useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			entry, err := xtaf.ResolveFile(s, args[1])
			if err != nil {
				return err
			}

			w := bufio.NewWriterSize(cmd.OutOrStdout(), 32*1024)
			if err := s.ReadFile(entry, w); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	return cmd
}
