//go:build linux
// +build linux

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

// Package fuse exposes a live, read-only xtaf.Session as a hierarchical
// FUSE filesystem. Directories resolve lazily through the session's
// directory walker and file reads walk the FAT chain on demand, rather
// than pre-loading content, matching the rest of the inspector's
// random-access, read-only model.
package fuse

import (
	"context"
	"os"
	"sort"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

// XtafFS is the root of the mounted filesystem, wrapping one session.
type XtafFS struct {
	Session *xtaf.Session
}

func (x *XtafFS) Root() (fs.Node, error) {
	return &Dir{fs: x, cluster: xtaf.RootCluster}, nil
}

// Dir is a directory node, identified by the cluster its entries live
// in (RootCluster for the volume root).
type Dir struct {
	fs      *XtafFS
	cluster uint32
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	a.Inode = uint64(d.cluster)
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	visits, err := d.fs.Session.ListDirVisits(d.cluster)
	if err != nil {
		return nil, fuse.EIO
	}
	for _, v := range visits {
		if v.Entry.Name != name {
			continue
		}
		if v.Entry.IsDir() {
			cluster := v.Entry.FirstCluster
			if cluster == 0 {
				cluster = xtaf.RootCluster
			}
			return &Dir{fs: d.fs, cluster: cluster}, nil
		}
		return &File{fs: d.fs, entry: v.Entry, inode: xtaf.SyntheticInode(v.Cluster, v.Slot)}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	visits, err := d.fs.Session.ListDirVisits(d.cluster)
	if err != nil {
		return nil, fuse.EIO
	}
	out := make([]fuse.Dirent, 0, len(visits))
	for _, v := range visits {
		typ := fuse.DT_File
		if v.Entry.IsDir() {
			typ = fuse.DT_Dir
		}
		out = append(out, fuse.Dirent{
			Inode: xtaf.SyntheticInode(v.Cluster, v.Slot),
			Name:  v.Entry.Name,
			Type:  typ,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// File is a regular-file node; reads walk the FAT chain on demand via
// the session rather than loading content up front.
type File struct {
	fs    *XtafFS
	entry xtaf.DirEntry
	inode uint64
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.entry.FileSize)
	a.Inode = f.inode
	mt := xtaf.DecodeDateTime(f.entry.UpdateDate, f.entry.UpdateTime)
	a.Mtime = mt.Time()
	if a.Mtime.IsZero() {
		a.Mtime = time.Unix(0, 0)
	}
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	buf := make([]byte, req.Size)
	n, err := f.fs.Session.ReadFileAt(f.entry, buf, req.Offset)
	if err != nil && n == 0 {
		resp.Data = []byte{}
		return nil
	}
	resp.Data = buf[:n]
	return nil
}
