package xtaf_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func buildVolumeDescriptor(magic string, spc, nfat uint32) []byte {
	buf := make([]byte, xtaf.BootSectorSize)
	copy(buf[0:4], magic)
	binary.BigEndian.PutUint32(buf[4:8], 0xdeadbeef)
	binary.BigEndian.PutUint32(buf[8:12], spc)
	binary.BigEndian.PutUint32(buf[12:16], nfat)
	return buf
}

func TestReadVolumeDescriptor_BadMagic(t *testing.T) {
	buf := buildVolumeDescriptor("FATX", 8, 1)
	_, err := xtaf.ReadVolumeDescriptor(bytes.NewReader(buf), 0)
	require.ErrorIs(t, err, xtaf.ErrBadMagic)
}

func TestReadVolumeDescriptor_Valid(t *testing.T) {
	buf := buildVolumeDescriptor("XTAF", 8, 1)
	vd, err := xtaf.ReadVolumeDescriptor(bytes.NewReader(buf), 0)
	require.NoError(t, err)
	require.Equal(t, uint32(8), vd.SectorsPerCluster)
	require.Equal(t, uint32(1), vd.NumFATs)
}

func TestReadVolumeDescriptor_BadNumFATs(t *testing.T) {
	buf := buildVolumeDescriptor("XTAF", 8, 2)
	_, err := xtaf.ReadVolumeDescriptor(bytes.NewReader(buf), 0)
	require.ErrorIs(t, err, xtaf.ErrBadGeometry)
}
