package xtaf

import (
	"fmt"
	"io"
)

// RootCluster is the synthetic cluster number that designates the root
// directory. It has no directory entry of its own; clusterToSector
// maps it onto g.RootStartSector the same as any other cluster, and the
// dot table is seeded with RootCluster mapping to itself.
const RootCluster uint32 = 1

// Session is a live, read-only attachment to one XTAF volume. It owns
// no write access to the backing image and never mutates it; Attach
// verifies the volume magic and geometry once, up front, and every
// later operation reuses the derived Geometry.
type Session struct {
	Image     io.ReaderAt
	ImagePath string
	Geo       *Geometry
	Dots      *DotTable

	// cwd is the cluster number of the current working directory;
	// RootCluster at attach time.
	cwd uint32

	// FreqTable counts, across every directory walk made through this
	// Session (listings, path lookups, DFXML export), how many times each
	// byte value 0-255 was observed in an accepted (live or deleted)
	// filename. Grounded on uxtaf.c's freq[256] summary.
	FreqTable [256]uint64
}

// Attach opens a volume at the given partition offset within the
// backing image and returns a ready-to-use Session. Grounded on
// uxtaf.c's attach().
func Attach(image io.ReaderAt, imagePath string, imageOffset, mediaSize uint64) (*Session, error) {
	geo, err := ComputeGeometry(image, imageOffset, mediaSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		Image:     image,
		ImagePath: imagePath,
		Geo:       geo,
		Dots:      NewDotTable(),
		cwd:       RootCluster,
	}, nil
}

// Cwd returns the cluster number of the current working directory.
func (s *Session) Cwd() uint32 { return s.cwd }

// absOffset turns a partition-relative sector number into an absolute
// byte offset within the backing image.
func (s *Session) absOffset(sector uint32) int64 {
	return int64(s.Geo.ImageOffset) + int64(sector)*sectorSize
}

// readCluster reads one full cluster's worth of bytes from the given
// partition-relative sector.
func (s *Session) readCluster(sector uint32) ([]byte, error) {
	clusterBytes := int(sectorSize) * int(s.Geo.Volume.SectorsPerCluster)
	buf := make([]byte, clusterBytes)
	if _, err := s.Image.ReadAt(buf, s.absOffset(sector)); err != nil {
		return nil, fmt.Errorf("%w: reading cluster at sector %d: %s", ErrIO, sector, err)
	}
	return buf, nil
}

// entriesPerCluster is the number of 64-byte directory entry slots in
// one cluster. The reference bounds this loop by sectors_per_cluster,
// which only agrees with the true slot count when clusterBytes/64==spc
// (spc==8); this computes it directly per the redesign note in
// spec.md §9 / SPEC_FULL.md §G, so every slot in the cluster is seen.
func (s *Session) entriesPerCluster() int {
	clusterBytes := sectorSize * int(s.Geo.Volume.SectorsPerCluster)
	return clusterBytes / DirEntrySize
}

// DirVisit is one decoded, accepted directory entry encountered while
// walking a directory, tagged with the cluster and slot it physically
// came from — the two inputs the §4.9 inode-synthesis formula needs.
type DirVisit struct {
	Entry   DirEntry
	Cluster uint32
	Slot    int
}

// walkDirCluster decodes every directory entry in one cluster, in
// physical on-disk order. An fnl value outside every known range
// aborts the scan of the rest of this cluster (the cluster's remaining
// bytes are no longer trustworthy); any other rejected entry (deleted
// or live, unprintable name) simply contributes nothing and scanning
// continues. Grounded on uxtaf.c's listdir()'s inner per-cluster loop.
func (s *Session) walkDirCluster(ref ClusterRef, onEntry func(v DirVisit)) error {
	buf, err := s.readCluster(ref.Sector)
	if err != nil {
		return err
	}
	n := s.entriesPerCluster()
	for i := 0; i < n; i++ {
		slot := buf[i*DirEntrySize : (i+1)*DirEntrySize]
		e := DecodeDirEntry(slot)

		switch e.Kind {
		case KindFree:
			continue
		case KindInvalid:
			return nil
		case KindDeleted, KindLive:
			if !IsPrintableName(e.Name) {
				continue
			}
			for _, b := range []byte(e.Name) {
				s.FreqTable[b]++
			}
			onEntry(DirVisit{Entry: e, Cluster: ref.Cluster, Slot: i})
		}
	}
	return nil
}

// walkDir walks every cluster of the directory whose first cluster is
// dirCluster, in chain order, invoking onEntry once per accepted entry.
func (s *Session) walkDir(dirCluster uint32, onEntry func(v DirVisit)) error {
	chain, err := BuildChain(s.Image, s.Geo, dirCluster, 0, true)
	if err != nil {
		return err
	}
	for _, ref := range chain {
		if err := s.walkDirCluster(ref, onEntry); err != nil {
			return err
		}
	}
	return nil
}

// ListDir returns every accepted directory entry, live or deleted, found
// in the directory whose first cluster is `dirCluster`, walking its full FAT
// chain and recording this->parent in the dot table as it goes (so a
// subsequent `cd ..` from any subdirectory just visited resolves).
// Grounded on uxtaf.c's listdir().
func (s *Session) ListDir(dirCluster uint32) ([]DirEntry, error) {
	var out []DirEntry
	err := s.walkDir(dirCluster, func(v DirVisit) {
		e := v.Entry
		if e.Kind == KindLive && e.IsDir() && e.FirstCluster != 0 {
			s.Dots.Insert(s.Geo, e.FirstCluster, dirCluster, true)
		}
		out = append(out, e)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListDirVisits is ListDir's counterpart for callers (the DFXML
// emitter) that need each entry's physical cluster/slot as well.
func (s *Session) ListDirVisits(dirCluster uint32) ([]DirVisit, error) {
	var out []DirVisit
	err := s.walkDir(dirCluster, func(v DirVisit) {
		e := v.Entry
		if e.Kind == KindLive && e.IsDir() && e.FirstCluster != 0 {
			s.Dots.Insert(s.Geo, e.FirstCluster, dirCluster, true)
		}
		out = append(out, v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lookupChild scans a directory's clusters for a live, non-deleted
// entry named `name` (case-sensitive, matching XTAF's on-disk byte
// comparison), returning ErrNotFound if absent.
func (s *Session) lookupChild(dirCluster uint32, name string) (DirEntry, error) {
	var found *DirEntry
	err := s.walkDir(dirCluster, func(v DirVisit) {
		if found != nil || v.Entry.Kind != KindLive {
			return
		}
		if v.Entry.Name == name {
			e := v.Entry
			found = &e
		}
	})
	if err != nil {
		return DirEntry{}, err
	}
	if found == nil {
		return DirEntry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if found.IsDir() && found.FirstCluster != 0 {
		s.Dots.Insert(s.Geo, found.FirstCluster, dirCluster, true)
	}
	return *found, nil
}

// ReadFile streams the content of a file entry to w, walking its FAT
// chain and truncating the final cluster so exactly e.FileSize bytes
// are written. Grounded on uxtaf.c's cat_file().
func (s *Session) ReadFile(e DirEntry, w io.Writer) error {
	if e.IsDir() {
		return fmt.Errorf("%w: is a directory", ErrInvalidEntry)
	}
	if e.FileSize == 0 {
		return nil
	}
	chain, err := BuildChain(s.Image, s.Geo, e.FirstCluster, uint64(e.FileSize), false)
	if err != nil {
		return err
	}
	clusterBytes := int64(sectorSize) * int64(s.Geo.Volume.SectorsPerCluster)
	remaining := int64(e.FileSize)
	buf := make([]byte, clusterBytes)
	for _, ref := range chain {
		n := clusterBytes
		if remaining < n {
			n = remaining
		}
		if _, err := s.Image.ReadAt(buf, s.absOffset(ref.Sector)); err != nil {
			return fmt.Errorf("%w: reading file cluster at sector %d: %s", ErrIO, ref.Sector, err)
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("%w: writing file content: %s", ErrIO, err)
		}
		remaining -= n
		if remaining <= 0 {
			break
		}
	}
	return nil
}

// ChangeDir resolves pathname against the current working directory and
// updates cwd on success. An unresolvable path leaves cwd untouched,
// matching the `cd` command's uxtaf.c behavior of staying put on error.
func (s *Session) ChangeDir(pathname string) error {
	cluster, err := ResolvePath(s, pathname)
	if err != nil {
		return err
	}
	s.cwd = cluster
	return nil
}

// ReadFileAt reads a random-access slice of a file entry's content into
// buf, starting at the given logical offset, returning the number of
// bytes read. It rebuilds the FAT chain on every call, trading a little
// redundant FAT I/O for a simple, stateless API suitable for the FUSE
// adapter's per-request reads.
func (s *Session) ReadFileAt(e DirEntry, buf []byte, offset int64) (int, error) {
	if e.IsDir() {
		return 0, fmt.Errorf("%w: is a directory", ErrInvalidEntry)
	}
	if offset >= int64(e.FileSize) {
		return 0, io.EOF
	}
	chain, err := BuildChain(s.Image, s.Geo, e.FirstCluster, uint64(e.FileSize), false)
	if err != nil {
		return 0, err
	}
	clusterBytes := int64(sectorSize) * int64(s.Geo.Volume.SectorsPerCluster)

	want := len(buf)
	if int64(want) > int64(e.FileSize)-offset {
		want = int(int64(e.FileSize) - offset)
	}

	read := 0
	for read < want {
		pos := offset + int64(read)
		idx := int(pos / clusterBytes)
		if idx >= len(chain) {
			break
		}
		inCluster := pos % clusterBytes
		n := clusterBytes - inCluster
		if remaining := int64(want - read); n > remaining {
			n = remaining
		}
		clusterBuf := make([]byte, n)
		if _, err := s.Image.ReadAt(clusterBuf, s.absOffset(chain[idx].Sector)+inCluster); err != nil {
			return read, fmt.Errorf("%w: reading file cluster at sector %d: %s", ErrIO, chain[idx].Sector, err)
		}
		copy(buf[read:], clusterBuf)
		read += int(n)
	}
	return read, nil
}

// ChangeDirCluster sets cwd directly to a cluster number already known
// to be valid, bypassing path resolution. Used when restoring a
// session from its sidecar file.
func (s *Session) ChangeDirCluster(cluster uint32) error {
	s.cwd = cluster
	return nil
}

// Info summarizes the session's geometry for the `info` command.
type Info struct {
	VolumeID          uint32
	SectorsPerCluster uint32
	NumClusters       uint32
	FATEntryWidth     uint8
	FATStartSector    uint32
	RootStartSector   uint32
	PartitionSize     uint64
	ImageOffset       uint64
}

func (s *Session) Info() Info {
	return Info{
		VolumeID:          s.Geo.Volume.VolumeID,
		SectorsPerCluster: s.Geo.Volume.SectorsPerCluster,
		NumClusters:       s.Geo.NumClusters,
		FATEntryWidth:     s.Geo.FATEntryWidth,
		FATStartSector:    s.Geo.FATStartSector,
		RootStartSector:   s.Geo.RootStartSector,
		PartitionSize:     s.Geo.PartitionSize,
		ImageOffset:       s.Geo.ImageOffset,
	}
}

// DotTablePairs exposes the dot table's current this->parent mappings
// for the `dot` command and for session persistence.
func (s *Session) DotTablePairs() map[uint32]uint32 {
	return s.Dots.Pairs()
}
