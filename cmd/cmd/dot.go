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
	"sort"

	"github.com/spf13/cobra"
)

func DefineDotCommand() *cobra.Command {
	var useMmap bool

	cmd := &cobra.Command{
		Use:          "dot <image-path>",
		Short:        "Print the session's cluster -> parent-cluster dot table",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, err := loadSession(args[0], useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			pairs := s.DotTablePairs()
			clusters := make([]uint32, 0, len(pairs))
			for c := range pairs {
				clusters = append(clusters, c)
			}
			sort.Slice(clusters, func(i, j int) bool { return clusters[i] < clusters[j] })

			out := cmd.OutOrStdout()
			for _, c := range clusters {
				fmt.Fprintf(out, "%d -> %d\n", c, pairs[c])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	return cmd
}
