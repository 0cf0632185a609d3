package xtaf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func computeTestGeometry(t *testing.T) (*xtaf.Geometry, *bytes.Reader) {
	t.Helper()
	img := newTestImage()
	g, err := xtaf.ComputeGeometry(img, 0, fixturePartitionSize)
	require.NoError(t, err)
	require.Equal(t, uint32(fixtureSPC), g.Volume.SectorsPerCluster)
	require.Equal(t, uint8(2), g.FATEntryWidth)
	require.Equal(t, uint32(fixtureRootStart), g.RootStartSector)
	return g, img
}

func TestBuildChain_SingleCluster(t *testing.T) {
	g, r := computeTestGeometry(t)

	chain, err := xtaf.BuildChain(r, g, 2, 7000, false)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	require.Equal(t, uint32(2), chain[0].Cluster)
}

func TestBuildChain_ThreeClusterChain(t *testing.T) {
	g, r := computeTestGeometry(t)

	chain, err := xtaf.BuildChain(r, g, 3, 20000, false)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	require.Equal(t, []uint32{3, 4, 5}, []uint32{chain[0].Cluster, chain[1].Cluster, chain[2].Cluster})
}

func TestBuildChain_ByteRunLengths(t *testing.T) {
	g, r := computeTestGeometry(t)

	chain, err := xtaf.BuildChain(r, g, 3, 20000, false)
	require.NoError(t, err)

	clusterBytes := uint64(fixtureClusterBytes)
	remaining := uint64(20000)
	wantLengths := []uint64{8192, 8192, 3616}
	wantOffsets := []uint64{0, 8192, 16384}
	offset := uint64(0)
	for i := range chain {
		length := clusterBytes
		if remaining < clusterBytes {
			length = remaining
		}
		require.Equal(t, wantLengths[i], length)
		require.Equal(t, wantOffsets[i], offset)
		offset += length
		remaining -= length
	}
}

func TestBuildChain_TooShortForDeclaredSize(t *testing.T) {
	g, r := computeTestGeometry(t)

	// FILEA's chain is a single cluster; claiming a size that needs three
	// clusters must surface as ErrChainTooShort for a regular file.
	_, err := xtaf.BuildChain(r, g, 2, uint64(fixtureClusterBytes)*3, false)
	require.ErrorIs(t, err, xtaf.ErrChainTooShort)
}

func TestBuildChain_TooShortIgnoredForDirectories(t *testing.T) {
	g, r := computeTestGeometry(t)

	chain, err := xtaf.BuildChain(r, g, 2, uint64(fixtureClusterBytes)*3, true)
	require.NoError(t, err)
	require.Len(t, chain, 1)
}
