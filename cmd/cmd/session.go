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

	"github.com/xtaflab/xtafkit/internal/disk"
	"github.com/xtaflab/xtafkit/internal/fs"
	"github.com/xtaflab/xtafkit/internal/mmap"
	"github.com/xtaflab/xtafkit/internal/sessionfile"
	"github.com/xtaflab/xtafkit/internal/xtaf"
)

// sidecarPath returns the session sidecar's path for a given image,
// matching uxtaf.c's convention of an infofile living next to the image.
func sidecarPath(imagePath string) string {
	return imagePath + ".xtafsession"
}

// openBacking opens imagePath as an io.ReaderAt, either via the
// platform file handle or, when useMmap is set, via a whole-image
// memory mapping. The returned closer must be called by the caller
// when done.
func openBacking(imagePath string, useMmap bool) (reader readerAtCloser, err error) {
	if useMmap {
		m, err := mmap.NewMmapFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("mmap %s: %w", imagePath, err)
		}
		return m, nil
	}
	f, err := fs.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", imagePath, err)
	}
	return f, nil
}

type readerAtCloser interface {
	ReadAt(p []byte, off int64) (int, error)
	Close() error
}

// loadSession re-attaches to imagePath using its persisted sidecar
// state (geometry is always recomputed fresh; cwd and the dot table
// are restored). Every command except `attach` calls this.
func loadSession(imagePath string, useMmap bool) (*xtaf.Session, readerAtCloser, error) {
	st, err := sessionfile.Load(sidecarPath(imagePath))
	if err != nil {
		return nil, nil, fmt.Errorf("no attached session for %s (run attach first): %w", imagePath, err)
	}

	r, err := openBacking(imagePath, useMmap)
	if err != nil {
		return nil, nil, err
	}

	s, err := xtaf.Attach(r, imagePath, st.ImageOffset, st.MediaSize)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	sessionfile.ApplyTo(s, st)
	return s, r, nil
}

// saveSession persists a session's volatile state (cwd, dot table) back
// to its sidecar, so the next invocation resumes where this one left off.
func saveSession(s *xtaf.Session) error {
	return sessionfile.Save(sidecarPath(s.ImagePath), sessionfile.State{
		ImagePath:   s.ImagePath,
		ImageOffset: s.Geo.ImageOffset,
		MediaSize:   s.Geo.MediaSize,
		Cwd:         s.Cwd(),
		DotTable:    s.DotTablePairs(),
	})
}

// attachSession computes geometry for a freshly opened backing reader
// and returns a brand-new Session (no sidecar involved); used only by
// the attach command itself.
func attachSession(r readerAtCloser, imagePath string, offset, mediaSize uint64) (*xtaf.Session, error) {
	return xtaf.Attach(r, imagePath, offset, mediaSize)
}

// mediaSizeOf determines the size of the media backing imagePath,
// preferring the disk package's device-aware stat over a plain
// os.Stat so raw block devices report their true size.
func mediaSizeOf(imagePath string) (uint64, error) {
	info, err := disk.StatMedia(imagePath)
	if err != nil {
		return 0, err
	}
	return uint64(info.RealSize), nil
}
