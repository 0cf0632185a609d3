package xtaf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
	"github.com/xtaflab/xtafkit/pkg/dfxml"
)

func TestSyntheticInode_Formula(t *testing.T) {
	// sector = (cluster-1)*32 + slot/8; inode = 3 + 8*sector + slot%8.
	require.Equal(t, uint64(3), xtaf.SyntheticInode(1, 0))
	require.Equal(t, uint64(3+8*32), xtaf.SyntheticInode(2, 0))
	require.Equal(t, uint64(3+8*32+8*1+3), xtaf.SyntheticInode(2, 11))
}

func TestExportDFXML_EmitsEveryEntryAndRecurses(t *testing.T) {
	s := attachTestSession(t)

	var sb strings.Builder
	w := dfxml.NewDFXMLWriter(&sb)
	require.NoError(t, w.WriteHeader(dfxml.DFXMLHeader{XmlOutput: dfxml.XmlOutputVersion}))

	var warnings []string
	err := xtaf.ExportDFXML(s, w, xtaf.RootCluster, "", func(msg string) {
		warnings = append(warnings, msg)
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out := sb.String()
	require.Contains(t, out, "<filename>FILEA</filename>")
	require.Contains(t, out, "<filename>FILEB</filename>")
	require.Contains(t, out, "<filename>SUBDIR</filename>")
	require.Contains(t, out, "<filename>BADDIR</filename>")
	require.NotContains(t, out, "<filename>/", "filenames must not carry a leading slash")
	require.NotContains(t, out, "GHOST1")
}

func TestExportDFXML_ByteRunsTruncateToDeclaredSize(t *testing.T) {
	s := attachTestSession(t)

	var sb strings.Builder
	w := dfxml.NewDFXMLWriter(&sb)
	require.NoError(t, w.WriteHeader(dfxml.DFXMLHeader{XmlOutput: dfxml.XmlOutputVersion}))

	err := xtaf.ExportDFXML(s, w, xtaf.RootCluster, "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out := sb.String()
	// FILEB is 20000 bytes across 3 clusters of 8192 bytes: two full runs
	// and one truncated to the 3616 bytes actually remaining.
	require.Equal(t, 2, strings.Count(out, `len="8192"`))
	require.Equal(t, 1, strings.Count(out, `len="3616"`))
}
