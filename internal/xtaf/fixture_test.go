package xtaf_test

import (
	"bytes"
	"encoding/binary"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

// newTestImage builds an in-memory XTAF partition used across the core
// package's tests: 16 sectors per cluster (8192-byte clusters), FAT16
// width, root directory in cluster 1 holding two regular files
// (FILEA, one cluster; FILEB, three chained clusters), one empty
// subdirectory (SUBDIR), and one directory whose first record is
// structurally invalid (BADDIR), so a scan of it must stop immediately.
const (
	fixtureSPC           = 16
	fixtureClusterBytes  = fixtureSPC * 512
	fixtureNumClusters   = 20
	fixturePartitionSize = fixtureNumClusters * fixtureClusterBytes
	fixtureFATStart      = 8
	fixtureFATSectors    = 8 // 20 clusters * 2 bytes = 40, rounded up to 4096 = 8 sectors
	fixtureRootStart     = fixtureFATStart + fixtureFATSectors
)

func clusterByteOffset(cluster uint32) int64 {
	sector := (cluster-1)*fixtureSPC + fixtureRootStart
	return int64(sector) * 512
}

func putFATEntry(buf []byte, cluster uint32, value uint16) {
	off := fixtureFATStart*512 + int(cluster)*2
	binary.BigEndian.PutUint16(buf[off:off+2], value)
}

func putDirEntry(buf []byte, cluster uint32, slot int, fnl byte, attr uint8, name string, fstart, fsize uint32) {
	off := clusterByteOffset(cluster) + int64(slot*xtaf.DirEntrySize)
	entry := buf[off : off+xtaf.DirEntrySize]
	entry[0] = fnl
	entry[1] = attr
	copy(entry[2:2+len(name)], name)
	binary.BigEndian.PutUint32(entry[44:48], fstart)
	binary.BigEndian.PutUint32(entry[48:52], fsize)
}

func newTestImage() *bytes.Reader {
	buf := make([]byte, fixturePartitionSize)

	copy(buf[0:4], "XTAF")
	binary.BigEndian.PutUint32(buf[4:8], 0x1)
	binary.BigEndian.PutUint32(buf[8:12], fixtureSPC)
	binary.BigEndian.PutUint32(buf[12:16], 1)

	// FILEA: one cluster, terminal.
	putFATEntry(buf, 2, 0xffff)
	// FILEB: three chained clusters.
	putFATEntry(buf, 3, 4)
	putFATEntry(buf, 4, 5)
	putFATEntry(buf, 5, 0xffff)
	// SUBDIR: one (empty) cluster, terminal.
	putFATEntry(buf, 6, 0xffff)
	// BADDIR: one cluster, terminal.
	putFATEntry(buf, 7, 0xffff)

	putDirEntry(buf, 1, 0, 5, 0, "FILEA", 2, 7000)
	putDirEntry(buf, 1, 1, 5, 0, "FILEB", 3, 20000)
	putDirEntry(buf, 1, 2, 6, xtaf.AttrDir, "SUBDIR", 6, 0)
	putDirEntry(buf, 1, 3, 6, xtaf.AttrDir, "BADDIR", 7, 0)

	// First record of BADDIR's cluster: fnl=0x2b is out of every known
	// range (not 0x00/0xFF/0xE5/1..42), so the scan must stop there.
	putDirEntry(buf, 7, 0, 0x2b, 0, "", 0, 0)
	// A second, individually well-formed record that must never be
	// seen, since it follows the invalid one in the same cluster.
	putDirEntry(buf, 7, 1, 6, 0, "GHOST1", 0, 1)

	return bytes.NewReader(buf)
}
