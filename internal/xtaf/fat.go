package xtaf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Directory entry attribute bits, adapted from the teacher's
// internal/disk/fat.go constants (which already matched this bitfield
// layout byte-for-byte).
const (
	AttrReadOnly = 1 << 0
	AttrHidden   = 1 << 1
	AttrSystem   = 1 << 2
	AttrVolume   = 1 << 3
	AttrDir      = 1 << 4
	AttrArchive  = 1 << 5
)

// reservedHighBound is the highest cluster value, once masked to the
// volume's FAT width, that still denotes a normal allocated cluster
// rather than end-of-chain/bad/reserved. Grounded on uxtaf.c's
// "0xffffffef & info->fatmask" check.
const reservedHighBound = 0xffffffef

// clusterToSector converts a cluster number to its partition-relative
// starting sector, the CLUST_2_SECT computation from uxtaf.c.
func clusterToSector(cluster, sectorsPerCluster, rootStartSector uint32) uint32 {
	return (cluster-1)*sectorsPerCluster + rootStartSector
}

// ClusterRef pairs a cluster number with its partition-relative
// starting sector, so callers that need the cluster number itself
// (inode synthesis, DFXML byte-run attributes) don't have to invert
// clusterToSector.
type ClusterRef struct {
	Cluster uint32
	Sector  uint32
}

// BuildChain walks the FAT starting at cluster `start` and returns
// every cluster in the chain, in on-disk order. `size` is the object's
// declared byte size, used only to compute how many clusters are
// expected; `isDirectory` suppresses the too-short-chain check, since
// directories report a size of 0 and the chain itself is the only
// authority on their length.
func BuildChain(r io.ReaderAt, g *Geometry, start uint32, size uint64, isDirectory bool) ([]ClusterRef, error) {
	spc := g.Volume.SectorsPerCluster
	clusterBytes := uint64(sectorSize) * uint64(spc)

	expectedClusters := size / clusterBytes
	if size%clusterBytes != 0 {
		expectedClusters++
	}

	chain := []ClusterRef{{Cluster: start, Sector: clusterToSector(start, spc, g.RootStartSector)}}
	cluster := start

	entryBuf := make([]byte, g.FATEntryWidth)
	for {
		entryOffset := uint64(g.FATStartSector)*sectorSize + uint64(cluster)*uint64(g.FATEntryWidth)
		if _, err := r.ReadAt(entryBuf, int64(g.ImageOffset+entryOffset)); err != nil {
			return nil, fmt.Errorf("%w: reading fat entry for cluster %d: %s", ErrIO, cluster, err)
		}

		var next uint32
		if g.FATEntryWidth == 2 {
			next = uint32(binary.BigEndian.Uint16(entryBuf))
		} else {
			next = binary.BigEndian.Uint32(entryBuf)
		}
		next &= g.FATMask

		if expectedClusters > 0 {
			expectedClusters--
		}

		if next < 2 || next > (reservedHighBound&g.FATMask) {
			break
		}

		chain = append(chain, ClusterRef{Cluster: next, Sector: clusterToSector(next, spc, g.RootStartSector)})
		cluster = next
	}

	if expectedClusters > 0 && !isDirectory {
		return nil, fmt.Errorf("%w: %d clusters left in regular file", ErrChainTooShort, expectedClusters)
	}
	return chain, nil
}
