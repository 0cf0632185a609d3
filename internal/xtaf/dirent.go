package xtaf

import (
	"encoding/binary"
	"unicode"
)

// DirEntrySize is the fixed size in bytes of a directory entry,
// grounded on uxtaf.c's struct direntry_s (64 bytes).
const DirEntrySize = 64

const maxNameBytes = 42

// EntryKind classifies a raw directory entry slot.
type EntryKind int

const (
	// KindFree marks an entry that was never written (fnl == 0x00) or
	// that terminates the in-use portion of the cluster (fnl == 0xFF).
	KindFree EntryKind = iota
	// KindDeleted marks a previously live entry whose name is still
	// recoverable (fnl == 0xE5).
	KindDeleted
	// KindLive marks a currently allocated entry (fnl in 1..42).
	KindLive
	// KindInvalid marks an fnl value outside every known range; once
	// encountered, the rest of the cluster cannot be trusted.
	KindInvalid
)

// DirEntry is a decoded 64-byte XTAF directory entry.
type DirEntry struct {
	Kind  EntryKind
	RawFNL byte
	Attr  uint8
	Name  string
	FirstCluster uint32
	FileSize     uint32
	CreateDate, CreateTime uint16
	AccessDate, AccessTime uint16
	UpdateDate, UpdateTime uint16
}

// IsDir reports whether the entry's attribute byte has the directory
// bit set.
func (e DirEntry) IsDir() bool { return e.Attr&AttrDir != 0 }

// classifyFNL returns the EntryKind for a raw fnl byte.
func classifyFNL(fnl byte) EntryKind {
	switch {
	case fnl == 0x00 || fnl == 0xff:
		return KindFree
	case fnl == 0xe5:
		return KindDeleted
	case fnl >= 1 && fnl <= maxNameBytes:
		return KindLive
	default:
		return KindInvalid
	}
}

// DecodeDirEntry decodes one 64-byte slot. The caller is responsible for
// skipping the slot (or the rest of the cluster) based on Kind.
func DecodeDirEntry(buf []byte) DirEntry {
	fnl := buf[0]
	kind := classifyFNL(fnl)

	nameBytes := buf[2 : 2+maxNameBytes]
	var name string
	if kind == KindLive {
		n := int(fnl)
		if n > maxNameBytes {
			n = maxNameBytes
		}
		name = string(nameBytes[:n])
	} else {
		// Deleted/invalid entries recover their name by scanning for a
		// NUL or 0xFF terminator, since fnl no longer holds a trustworthy
		// length.
		end := maxNameBytes
		for i, b := range nameBytes {
			if b == 0x00 || b == 0xff {
				end = i
				break
			}
		}
		name = string(nameBytes[:end])
	}

	return DirEntry{
		Kind:         kind,
		RawFNL:       fnl,
		Attr:         buf[1],
		Name:         name,
		FirstCluster: binary.BigEndian.Uint32(buf[44:48]),
		FileSize:     binary.BigEndian.Uint32(buf[48:52]),
		CreateDate:   binary.BigEndian.Uint16(buf[52:54]),
		CreateTime:   binary.BigEndian.Uint16(buf[54:56]),
		AccessDate:   binary.BigEndian.Uint16(buf[56:58]),
		AccessTime:   binary.BigEndian.Uint16(buf[58:60]),
		UpdateDate:   binary.BigEndian.Uint16(buf[60:62]),
		UpdateTime:   binary.BigEndian.Uint16(buf[62:64]),
	}
}

// IsPrintableName reports whether every byte of name is a printable
// ASCII character. A directory entry whose recovered name fails this
// check is rejected on its own; the rest of the cluster is still scanned
// normally (matching uxtaf.c's is_dent check, which only ever discards
// the one entry).
func IsPrintableName(name string) bool {
	for _, r := range name {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
