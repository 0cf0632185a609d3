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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtaflab/xtafkit/internal/fuse"
)

func DefineMountCommand() *cobra.Command {
	var useMmap bool
	var mountpoint string

	cmd := &cobra.Command{
		Use:   "mount <image-path>",
		Short: "Mount the attached volume as a read-only FUSE filesystem",
		Long: `The 'mount' command exposes a live, read-only view of the attached
XTAF volume's directory tree at the given mountpoint, resolving
directories and file content on demand through the same path
resolver and FAT chain walker the other commands use.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, err := loadSession(args[0], useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			mp := mountpoint
			if mp == "" {
				mp = defaultMountpoint(args[0])
			}
			return fuse.Mount(mp, s)
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	cmd.Flags().StringVarP(&mountpoint, "mountpoint", "m", "", "directory to mount at (default: derived from the image name)")
	return cmd
}

// defaultMountpoint derives a mount directory name from the image
// path by stripping its extension, the same convention the recovery
// report mounter used.
func defaultMountpoint(imagePath string) string {
	baseName := filepath.Base(imagePath)
	ext := filepath.Ext(baseName)
	baseName = strings.TrimSuffix(baseName, ext)
	if baseName == "" {
		return "xtaf_mnt"
	}
	return baseName + "_mnt"
}
