package xtaf

import (
	"fmt"

	"github.com/xtaflab/xtafkit/pkg/dfxml"
)

// SyntheticInode computes the synthetic inode number assigned to a
// directory entry, since XTAF has no inode concept of its own. Grounded
// on uxtaf.c's dfxmlify(): sector = (cluster-1)*32 + slot/8; inode =
// 3 + 8*sector + slot%8. The "32" here is a fixed constant from the
// reference's inode scheme, unrelated to the volume's actual
// sectors-per-cluster, and is preserved bit-for-bit.
func SyntheticInode(cluster uint32, slot int) uint64 {
	sector := uint64(cluster-1)*32 + uint64(slot/8)
	return 3 + 8*sector + uint64(slot%8)
}

// ExportDFXML walks the directory tree rooted at startCluster
// depth-first, in physical on-disk order, and writes one <fileobject>
// per accepted entry. Grounded on uxtaf.c's dfxmlify(), which saves and
// restores the working directory around each recursive descent; the Go
// version never touches s.cwd at all; walkDir only ever takes an
// explicit cluster argument, so there is no shared cursor to corrupt.
// progress, if non-nil, is invoked once per emitted fileobject with the
// entry's declared size, so a caller can drive a pkg/pbar progress bar
// without the exporter itself knowing anything about terminal output.
func ExportDFXML(s *Session, w *dfxml.DFXMLWriter, startCluster uint32, prefix string, warn func(string), progress func(size uint64)) error {
	return exportDir(s, w, startCluster, prefix, warn, progress)
}

func exportDir(s *Session, w *dfxml.DFXMLWriter, dirCluster uint32, prefix string, warn func(string), progress func(size uint64)) error {
	visits, err := s.ListDirVisits(dirCluster)
	if err != nil {
		return err
	}

	for _, v := range visits {
		e := v.Entry
		fullName := prefix + e.Name

		obj, err := fileObjectFor(s, e, v.Cluster, v.Slot, fullName, warn)
		if err != nil {
			return err
		}
		if err := w.WriteFileObject(obj); err != nil {
			return fmt.Errorf("%w: writing fileobject for %q: %s", ErrIO, fullName, err)
		}
		if progress != nil {
			progress(uint64(e.FileSize))
		}

		if e.IsDir() && e.Kind == KindLive && e.FirstCluster != 0 {
			if err := exportDir(s, w, e.FirstCluster, fullName+"/", warn, progress); err != nil {
				return err
			}
		}
	}
	return nil
}

// fileObjectFor builds the DFXML FileObject for one directory entry,
// including its byte runs. A regular file's chain is walked and each
// cluster contributes exactly one byte run, with the final run
// truncated so the sum of run lengths equals the declared file size
// exactly; a mismatch between the chain's raw capacity and the
// declared size is non-fatal and reported through warn.
func fileObjectFor(s *Session, e DirEntry, cluster uint32, slot int, fullName string, warn func(string)) (dfxml.FileObject, error) {
	dt := DecodeDateTime(e.CreateDate, e.CreateTime)
	mt := DecodeDateTime(e.UpdateDate, e.UpdateTime)
	at := DecodeDateTime(e.AccessDate, e.AccessTime)

	nameType := "r"
	if e.IsDir() {
		nameType = "d"
	}

	obj := dfxml.FileObject{
		Filename:       fullName,
		FilenameLength: int(e.RawFNL),
		NameType:       nameType,
		Alloc:          e.Kind == KindLive,
		Inode:          SyntheticInode(cluster, slot),
		FileSize:       uint64(e.FileSize),
		Crtime:         dt.Time().Format("2006-01-02T15:04:05Z"),
		Mtime:          mt.Time().Format("2006-01-02T15:04:05Z"),
		Atime:          at.Time().Format("2006-01-02T15:04:05Z"),
	}

	if e.IsDir() || e.FileSize == 0 || e.FirstCluster == 0 {
		return obj, nil
	}

	chain, err := BuildChain(s.Image, s.Geo, e.FirstCluster, uint64(e.FileSize), false)
	if err != nil {
		if warn != nil {
			warn(fmt.Sprintf("%s: %s", fullName, err))
		}
		return obj, nil
	}

	clusterBytes := uint64(sectorSize) * uint64(s.Geo.Volume.SectorsPerCluster)
	remaining := uint64(e.FileSize)
	var fileOffset uint64

	for i, ref := range chain {
		runLen := clusterBytes
		if remaining < runLen {
			runLen = remaining
		}
		var next uint32
		if i+1 < len(chain) {
			next = chain[i+1].Cluster
		}
		obj.ByteRuns.Runs = append(obj.ByteRuns.Runs, dfxml.ByteRun{
			Offset:      fileOffset,
			ImgOffset:   uint64(s.absOffset(ref.Sector)),
			Length:      runLen,
			ThisCluster: ref.Cluster,
			NextCluster: next,
		})
		fileOffset += runLen
		if remaining >= runLen {
			remaining -= runLen
		} else {
			remaining = 0
		}
	}

	if fileOffset != uint64(e.FileSize) && warn != nil {
		warn(fmt.Sprintf("%s: byte runs total %d bytes, declared size is %d", fullName, fileOffset, e.FileSize))
	}

	return obj, nil
}
