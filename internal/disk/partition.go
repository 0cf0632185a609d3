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
package disk

/*
struct partition_struct
{
  ...
  unsigned int  part_type_xbox;
  ...
};
*/

// KnownPartition describes one of the fixed partitions laid out by the
// Xbox 360 dashboard on a retail hard disk. Unlike a PC disk, the
// partition layout is not read from an on-disk table: every console
// writes the same partitions at the same byte offsets, so the offset
// itself identifies the partition.
type KnownPartition struct {
	Name   string
	Offset uint64 // byte offset from the start of the physical disk
	Size   uint64 // byte size of the partition, 0 meaning "rest of the media"
}

// KnownPartitions lists the well-known Xbox 360 partition offsets and
// their sizes, in on-disk order.
var KnownPartitions = []KnownPartition{
	{Name: "system-cache", Offset: 0x00000000, Size: 0}, // sized from media, see LookupPartitionSize
	{Name: "game-cache", Offset: 0x80000, Size: 2147483648},
	{Name: "system-extended", Offset: 0x80080000, Size: 2348810240},
	{Name: "system-partition", Offset: 0x10c080000, Size: 216203264},
	{Name: "system-update", Offset: 0x118eb0000, Size: 134217728},
	{Name: "system-update2", Offset: 0x120eb0000, Size: 268435456},
	{Name: "data", Offset: 0x130eb0000, Size: 0}, // sized from media, see LookupPartitionSize
}

// LookupPartitionSize returns the partition size for a known partition
// offset. mediaSize is the total size of the backing disk/image; it is
// used both for the two "rest of media" entries and as the fallback for
// an offset that is not in the known table (a detached/removed drive,
// or one imaged starting partway through the disk).
//
// The bool result reports whether the offset matched a known partition
// exactly; a false result with a non-zero size means the size was
// derived from mediaSize - offset rather than looked up.
func LookupPartitionSize(offset, mediaSize uint64) (size uint64, known bool) {
	for _, p := range KnownPartitions {
		if p.Offset != offset {
			continue
		}
		if p.Size != 0 {
			return p.Size, true
		}
		if mediaSize > offset {
			return mediaSize - offset, true
		}
		return mediaSize, true
	}
	if mediaSize > offset {
		return mediaSize - offset, false
	}
	return mediaSize, false
}
