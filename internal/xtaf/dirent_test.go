package xtaf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func TestDecodeDirEntry_InvalidFNLAbortsCluster(t *testing.T) {
	buf := make([]byte, xtaf.DirEntrySize)
	buf[0] = 0x2b // outside 0x00/0xFF/0xE5/1..42
	e := xtaf.DecodeDirEntry(buf)
	require.Equal(t, xtaf.KindInvalid, e.Kind)
}

func TestDecodeDirEntry_LiveClassification(t *testing.T) {
	buf := make([]byte, xtaf.DirEntrySize)
	buf[0] = 5
	copy(buf[2:], "HELLO")
	e := xtaf.DecodeDirEntry(buf)
	require.Equal(t, xtaf.KindLive, e.Kind)
	require.Equal(t, "HELLO", e.Name)
}

func TestDecodeDirEntry_DeletedRecoversNameUpToTerminator(t *testing.T) {
	buf := make([]byte, xtaf.DirEntrySize)
	buf[0] = 0xe5
	copy(buf[2:], "OLDNAME")
	buf[2+len("OLDNAME")] = 0x00
	e := xtaf.DecodeDirEntry(buf)
	require.Equal(t, xtaf.KindDeleted, e.Kind)
	require.Equal(t, "OLDNAME", e.Name)
}

func TestIsPrintableName_RejectsNonASCII(t *testing.T) {
	require.False(t, xtaf.IsPrintableName("GOOD\x01NAME"))
	require.True(t, xtaf.IsPrintableName("GOODNAME"))
}

func TestDecodeDirEntry_FreeIsNeitherLiveNorDeleted(t *testing.T) {
	buf := make([]byte, xtaf.DirEntrySize)
	buf[0] = 0x00
	e := xtaf.DecodeDirEntry(buf)
	require.Equal(t, xtaf.KindFree, e.Kind)

	buf[0] = 0xff
	e = xtaf.DecodeDirEntry(buf)
	require.Equal(t, xtaf.KindFree, e.Kind)
}
