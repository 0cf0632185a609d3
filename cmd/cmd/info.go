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

	"github.com/xtaflab/xtafkit/pkg/util/format"
)

func DefineInfoCommand() *cobra.Command {
	var useMmap bool

	cmd := &cobra.Command{
		Use:          "info <image-path>",
		Short:        "Print the attached volume's geometry",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, err := loadSession(args[0], useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			info := s.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "volume id:            0x%08x\n", info.VolumeID)
			fmt.Fprintf(out, "sectors per cluster:  %d\n", info.SectorsPerCluster)
			fmt.Fprintf(out, "cluster count:        %d\n", info.NumClusters)
			fmt.Fprintf(out, "fat entry width:      %d bytes\n", info.FATEntryWidth)
			fmt.Fprintf(out, "fat start sector:     %d\n", info.FATStartSector)
			fmt.Fprintf(out, "root start sector:    %d\n", info.RootStartSector)
			fmt.Fprintf(out, "partition size:       %s\n", format.FormatBytes(int64(info.PartitionSize)))
			fmt.Fprintf(out, "image offset:         %s\n", format.FormatBytes(int64(info.ImageOffset)))
			fmt.Fprintf(out, "working directory:    cluster %d\n", s.Cwd())
			return nil
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	return cmd
}
