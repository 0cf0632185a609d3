// Package sessionfile persists an attached session's state to an opaque
// sidecar file: the image offset and media size from which Attach
// re-derives the geometry, the working directory, and the dot table. The
// geometry itself is not stored. This lets `cd` and `ls` issued across
// separate CLI invocations share the same working directory and parent
// map. Grounded on uxtaf.c's read_infofile()/write_infofile(), which
// write their session state to a fixed-layout binary file next to the
// image.
package sessionfile

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

// State is everything a session needs to resume across invocations.
type State struct {
	ImagePath   string
	ImageOffset uint64
	MediaSize   uint64
	Cwd         uint32
	DotTable    map[uint32]uint32
}

// Save writes state to path, overwriting any existing sidecar.
func Save(path string, s State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sessionfile: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("sessionfile: encoding %s: %w", path, err)
	}
	return nil
}

// Load reads a sidecar previously written by Save.
func Load(path string) (State, error) {
	f, err := os.Open(path)
	if err != nil {
		return State{}, fmt.Errorf("sessionfile: opening %s: %w", path, err)
	}
	defer f.Close()
	var s State
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return State{}, fmt.Errorf("sessionfile: decoding %s: %w", path, err)
	}
	return s, nil
}

// ApplyTo restores cwd and the dot table onto an already-attached
// session (geometry itself is re-derived by Attach, not restored here,
// since it is cheap to recompute and doing so also re-validates the
// image hasn't changed shape between invocations).
func ApplyTo(s *xtaf.Session, st State) {
	for this, parent := range st.DotTable {
		s.Dots.Insert(s.Geo, this, parent, false)
	}
	_ = s.ChangeDirCluster(st.Cwd)
}
