package dfxml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/pkg/dfxml"
)

func TestReadFileObjects_RoundTripsWriterOutput(t *testing.T) {
	var sb strings.Builder
	w := dfxml.NewDFXMLWriter(&sb)
	require.NoError(t, w.WriteHeader(dfxml.DFXMLHeader{XmlOutput: dfxml.XmlOutputVersion}))

	require.NoError(t, w.WriteFileObject(dfxml.FileObject{
		Filename: "FILEA",
		NameType: "r",
		Alloc:    true,
		Inode:    3,
		FileSize: 7000,
		ByteRuns: dfxml.ByteRuns{Runs: []dfxml.ByteRun{
			{Offset: 0, ImgOffset: 16384, Length: 7000, ThisCluster: 2},
		}},
	}))
	require.NoError(t, w.WriteFileObject(dfxml.FileObject{
		Filename: "SUBDIR",
		NameType: "d",
		Alloc:    true,
		Inode:    11,
	}))
	require.NoError(t, w.Close())

	objs, err := dfxml.ReadFileObjects(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, objs, 2)

	require.Equal(t, "FILEA", objs[0].Filename)
	require.Equal(t, uint64(7000), objs[0].FileSize)
	require.Len(t, objs[0].ByteRuns.Runs, 1)
	require.Equal(t, uint64(16384), objs[0].ByteRuns.Runs[0].ImgOffset)

	require.Equal(t, "SUBDIR", objs[1].Filename)
	require.Equal(t, "d", objs[1].NameType)
}
