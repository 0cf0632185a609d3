package xtaf

import (
	"fmt"
	"io"

	"github.com/xtaflab/xtafkit/internal/disk"
)

const sectorSize = 512

// FAT32ClusterThreshold is the cluster-count boundary used to pick
// between a 16-bit and a 32-bit FAT entry width. A volume with at least
// this many clusters cannot be addressed with 16-bit entries.
const FAT32ClusterThreshold = 0xfff4

// FAT entry masks, applied after byte-swapping a raw FAT cell.
const (
	FAT16Mask uint32 = 0x0000ffff
	FAT32Mask uint32 = 0x0fffffff
)

// Geometry holds every value the on-disk layout computer derives from
// the volume descriptor, the known-partition-size table, and the
// quirk-block probe. All sector/cluster fields are partition-relative;
// ImageOffset is added back in by the session before any ReadAt call.
type Geometry struct {
	Volume VolumeDescriptor

	ImageOffset    uint64
	MediaSize      uint64
	PartitionSize  uint64
	NumClusters    uint32
	FATMask        uint32
	FATEntryWidth  uint8 // 2 or 4 bytes
	FATStartSector uint32
	FATSizeBytes   uint32
	FATSectors     uint32
	RootStartSector uint32
	FirstClusterSector uint32
	MaxCluster     uint32
}

// ComputeGeometry reads the volume descriptor at imageOffset and derives
// the full on-disk layout, including the root-sector quirk correction,
// grounded on uxtaf.c's attach().
func ComputeGeometry(r io.ReaderAt, imageOffset, mediaSize uint64) (*Geometry, error) {
	partitionSize, _ := disk.LookupPartitionSize(imageOffset, mediaSize)

	vd, err := ReadVolumeDescriptor(r, int64(imageOffset))
	if err != nil {
		return nil, err
	}

	if vd.SectorsPerCluster == 0 || mediaSize == 0 || !isPowerOfTwo(vd.SectorsPerCluster) {
		return nil, fmt.Errorf("%w: spc=%d mediasize=%d", ErrBadGeometry, vd.SectorsPerCluster, mediaSize)
	}

	g := &Geometry{
		Volume:        *vd,
		ImageOffset:   imageOffset,
		MediaSize:     mediaSize,
		PartitionSize: partitionSize,
	}

	clusterBytes := uint64(sectorSize) * uint64(vd.SectorsPerCluster)
	g.NumClusters = uint32(partitionSize / clusterBytes)

	if g.NumClusters >= FAT32ClusterThreshold {
		g.FATMask = FAT32Mask
		g.FATEntryWidth = 4
	} else {
		g.FATMask = FAT16Mask
		g.FATEntryWidth = 2
	}

	g.FATSizeBytes = g.NumClusters * uint32(g.FATEntryWidth)
	g.FATSizeBytes = roundUpTo4096(g.FATSizeBytes)
	g.FATSectors = g.FATSizeBytes / sectorSize
	g.FATStartSector = 8

	g.RootStartSector = g.FATSectors + g.FATStartSector

	quirked, err := hasQuirkBlock(r, imageOffset, uint64(g.RootStartSector)*sectorSize, clusterBytes)
	if err != nil {
		return nil, err
	}
	if quirked {
		g.RootStartSector += 8
	}

	g.FirstClusterSector = g.RootStartSector + vd.SectorsPerCluster
	maxCluster := (uint32(partitionSize/sectorSize) - g.FirstClusterSector) / vd.SectorsPerCluster + 1
	if maxCluster >= g.NumClusters {
		maxCluster = g.NumClusters - 1
	}
	g.MaxCluster = maxCluster

	return g, nil
}

// roundUpTo4096 rounds n up to the next multiple of 4096, matching
// uxtaf.c's fatsize rounding (and, in spirit, the chunk-size rounding
// idiom used elsewhere in the corpus for block-aligned sizes).
func roundUpTo4096(n uint32) uint32 {
	const m = 4096
	if n%m == 0 {
		return n
	}
	return (n/m + 1) * m
}

// hasQuirkBlock reads the entire candidate root cluster (or 4096 bytes,
// whichever is larger) at the candidate root-sector offset and reports
// whether every byte is zero. The reference only ever probes a fixed
// 4096 bytes, which silently under-reads the quirk block on any volume
// whose cluster is larger than 4096 bytes; scanning the full first
// cluster instead is the redesign called for in SPEC_FULL.md §G.
func hasQuirkBlock(r io.ReaderAt, imageOffset, rootByteOffset, clusterBytes uint64) (bool, error) {
	window := clusterBytes
	if window < 4096 {
		window = 4096
	}
	buf := make([]byte, window)
	if _, err := r.ReadAt(buf, int64(imageOffset+rootByteOffset)); err != nil {
		return false, fmt.Errorf("%w: reading quirk block: %s", ErrIO, err)
	}
	for _, b := range buf {
		if b != 0 {
			return false, nil
		}
	}
	return true, nil
}
