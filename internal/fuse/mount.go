//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func Mount(mountpoint string, session *xtaf.Session) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
