package xtaf

// DotTable records the parent cluster of every directory cluster
// discovered so far, substituting for the missing ".." entries in XTAF
// directory clusters. Grounded on uxtaf.c's struct dot_table_s /
// find_dot_entry() / add_dot_entry(); unlike the reference's singly
// linked list, entries are held unordered in a map.
type DotTable struct {
	entries map[uint32]uint32
}

// NewDotTable returns an empty table seeded with the root's self-mapping
// (cluster 1 is its own parent), matching attach()'s
// add_dot_entry(info, dot_table, 1, 1, 0).
func NewDotTable() *DotTable {
	dt := &DotTable{entries: make(map[uint32]uint32)}
	dt.entries[1] = 1
	return dt
}

// Lookup returns the parent cluster of `cluster`, and whether it was
// found.
func (dt *DotTable) Lookup(cluster uint32) (uint32, bool) {
	parent, ok := dt.entries[cluster]
	return parent, ok
}

// Insert records this->parent. When checkExisting is true (as in the
// ls/dfxml traversal), an existing mapping for `this` is left untouched.
// The insert is bounds-checked against the geometry: a `this` whose
// byte offset (this × cluster size) is at or beyond g.PartitionSize is
// silently dropped, so a corrupted fstart value can never grow the table
// with a bogus entry; see add_dot_entry()'s "out-of-bounds cluster" guard.
func (dt *DotTable) Insert(g *Geometry, this, parent uint32, checkExisting bool) {
	if checkExisting {
		if _, ok := dt.entries[this]; ok {
			return
		}
	}
	clusterBytes := uint64(sectorSize) * uint64(g.Volume.SectorsPerCluster)
	if clusterBytes*uint64(this) >= g.PartitionSize {
		return
	}
	dt.entries[this] = parent
}

// Pairs returns a snapshot of every this->parent mapping, for the `dot`
// command and for session persistence.
func (dt *DotTable) Pairs() map[uint32]uint32 {
	out := make(map[uint32]uint32, len(dt.entries))
	for k, v := range dt.entries {
		out[k] = v
	}
	return out
}
