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

	"github.com/xtaflab/xtafkit/internal/disk"
	"github.com/xtaflab/xtafkit/pkg/util/format"
)

func DefineAttachCommand() *cobra.Command {
	var useMmap bool

	cmd := &cobra.Command{
		Use:          "attach <image-path> [partition-offset]",
		Short:        "Attach to an XTAF volume inside an image or raw device",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := disk.NormalizeVolumePath(args[0])

			var offset int64
			if len(args) == 2 {
				o, err := format.ParseBytes(args[1])
				if err != nil {
					return fmt.Errorf("invalid partition offset %q: %w", args[1], err)
				}
				offset = o
			}

			mediaSize, err := mediaSizeOf(imagePath)
			if err != nil {
				return err
			}

			r, err := openBacking(imagePath, useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			s, err := attachSession(r, imagePath, uint64(offset), mediaSize)
			if err != nil {
				return err
			}

			if err := saveSession(s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "attached %s at offset %s (%s total)\n",
				imagePath, format.FormatBytes(offset), format.FormatBytes(int64(mediaSize)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	return cmd
}
