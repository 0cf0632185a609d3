package xtaf

import "errors"

// Sentinel errors covering every failure mode the inspector distinguishes.
// ErrChainTooShort, ErrNotFound and ErrInvalidEntry are recoverable at the
// call site (they describe a malformed or absent object, not a broken
// session); the rest indicate the session itself can no longer be trusted.
var (
	// ErrBadMagic is returned when a volume descriptor's magic bytes are
	// not "XTAF".
	ErrBadMagic = errors.New("xtaf: bad volume magic")

	// ErrBadGeometry is returned when the volume descriptor's geometry
	// fields fail a basic sanity check (a FAT count other than 1, zero
	// sectors-per-cluster, a sectors-per-cluster that is not a power of
	// two, or a zero media size).
	ErrBadGeometry = errors.New("xtaf: bad volume geometry")

	// ErrIO wraps a short read or other I/O failure against the backing
	// image.
	ErrIO = errors.New("xtaf: i/o error")

	// ErrChainTooShort is returned when a regular file's FAT chain ends
	// before accounting for all of its declared size.
	ErrChainTooShort = errors.New("xtaf: fat chain shorter than file size")

	// ErrNotFound is returned when a path component, directory entry, or
	// dot-table mapping cannot be located.
	ErrNotFound = errors.New("xtaf: not found")

	// ErrInvalidEntry is returned when an operation is asked to treat a
	// directory entry as something it structurally cannot be (e.g.
	// reading a directory's entry as a file).
	ErrInvalidEntry = errors.New("xtaf: invalid directory entry")

	// ErrOutOfBounds describes a cluster number that falls outside the
	// bounds of the attached partition. No function in this package
	// returns it: DotTable.Insert drops an out-of-bounds entry silently,
	// and BuildChain does not bounds-check the FAT pointers it follows.
	ErrOutOfBounds = errors.New("xtaf: cluster out of bounds")
)
