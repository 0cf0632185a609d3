package xtaf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func TestResolvePath_AbsoluteIgnoresCwd(t *testing.T) {
	s := attachTestSession(t)
	require.NoError(t, s.ChangeDir("SUBDIR"))
	require.Equal(t, uint32(6), s.Cwd())

	cluster, err := xtaf.ResolvePath(s, "/SUBDIR")
	require.NoError(t, err)
	require.Equal(t, uint32(6), cluster)
}

func TestResolveFile_PlainName(t *testing.T) {
	s := attachTestSession(t)

	e, err := xtaf.ResolveFile(s, "FILEA")
	require.NoError(t, err)
	require.Equal(t, "FILEA", e.Name)
	require.Equal(t, uint32(7000), e.FileSize)
}

func TestResolveFile_UnknownComponentFails(t *testing.T) {
	s := attachTestSession(t)

	_, err := xtaf.ResolveFile(s, "NOSUCH/FILEA")
	require.ErrorIs(t, err, xtaf.ErrNotFound)
}
