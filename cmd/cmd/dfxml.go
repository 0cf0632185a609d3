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
	"github.com/spf13/cobra"

	"github.com/xtaflab/xtafkit/internal/env"
	"github.com/xtaflab/xtafkit/internal/logger"
	"github.com/xtaflab/xtafkit/internal/xtaf"
	"github.com/xtaflab/xtafkit/pkg/dfxml"
	"github.com/xtaflab/xtafkit/pkg/pbar"
)

func DefineDfxmlCommand() *cobra.Command {
	var useMmap bool
	var startPath string

	cmd := &cobra.Command{
		Use:          "dfxml <image-path>",
		Short:        "Emit a DFXML report of the attached volume's directory tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, r, err := loadSession(args[0], useMmap)
			if err != nil {
				return err
			}
			defer r.Close()

			var startCluster uint32 = xtaf.RootCluster
			if startPath != "" {
				c, err := xtaf.ResolvePath(s, startPath)
				if err != nil {
					return err
				}
				startCluster = c
			}

			log := logger.New(cmd.ErrOrStderr(), logger.WarnLevel)

			w := dfxml.NewDFXMLWriter(cmd.OutOrStdout())
			hdr := dfxml.DFXMLHeader{
				XmlOutput: dfxml.XmlOutputVersion,
				Metadata:  dfxml.DefaultMetadata,
				Creator: dfxml.Creator{
					Package:              AppName,
					Version:              env.Version,
					ExecutionEnvironment: dfxml.GetExecEnv(),
				},
				Source: dfxml.Source{
					ImageFilename: s.ImagePath,
					SectorSize:    512,
					ImageSize:     s.Geo.MediaSize,
				},
			}
			if err := w.WriteHeader(hdr); err != nil {
				return err
			}

			warn := func(msg string) { log.Warnf("dfxml: %s", msg) }

			pb := pbar.NewProgressBarState(int64(s.Geo.PartitionSize))
			pb.Out = cmd.ErrOrStderr()
			filesFound := 0
			progress := func(size uint64) {
				filesFound++
				pb.FilesFound = filesFound
				pb.ProcessedBytes += int64(size)
				pb.Render(false)
			}

			if err := xtaf.ExportDFXML(s, w, startCluster, "", warn, progress); err != nil {
				return err
			}
			pb.Render(true)
			pb.Finish()

			return w.Close()
		},
	}

	cmd.Flags().BoolVar(&useMmap, "mmap", false, "map the whole image into memory instead of issuing ReadAt calls")
	cmd.Flags().StringVar(&startPath, "path", "", "directory to start the report from (default: volume root)")
	return cmd
}
