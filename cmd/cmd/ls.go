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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtaflab/xtafkit/internal/xtaf"
	"github.com/xtaflab/xtafkit/pkg/util/format"
)

func DefineLsCommand() *cobra.Command {
	var useMmap bool
	var showFreq bool

	cmd := &cobra.Command{
		Use:          "ls <image-path> [path]",
		Short:        "List the current (or given) directory",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, err := loadSession(args[0], useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			dirCluster := s.Cwd()
			if len(args) == 2 {
				dirCluster, err = xtaf.ResolvePath(s, args[1])
				if err != nil {
					return err
				}
			}

			entries, err := s.ListDir(dirCluster)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				kind := "f"
				if e.IsDir() {
					kind = "d"
				}
				status := " "
				if e.Kind == xtaf.KindDeleted {
					status = "*"
				}
				fmt.Fprintf(out, "%s%s %10s  %s\n", status, kind, format.FormatBytes(int64(e.FileSize)), e.Name)
			}

			if showFreq {
				fmt.Fprintln(out, "\nbyte values observed in filenames this session:")
				for b, n := range s.FreqTable {
					if n == 0 {
						continue
					}
					fmt.Fprintf(out, "  0x%02x: %d\n", b, n)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	cmd.Flags().BoolVar(&showFreq, "freq", false, "also print the byte-value frequency table observed in filenames")
	return cmd
}
