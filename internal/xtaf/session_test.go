package xtaf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func attachTestSession(t *testing.T) *xtaf.Session {
	t.Helper()
	img := newTestImage()
	s, err := xtaf.Attach(img, "test.img", 0, fixturePartitionSize)
	require.NoError(t, err)
	return s
}

func TestListDir_RootEntries(t *testing.T) {
	s := attachTestSession(t)

	entries, err := s.ListDir(xtaf.RootCluster)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	names := make(map[string]xtaf.DirEntry, len(entries))
	for _, e := range entries {
		names[e.Name] = e
	}
	require.Equal(t, uint32(7000), names["FILEA"].FileSize)
	require.Equal(t, uint32(20000), names["FILEB"].FileSize)
	require.True(t, names["SUBDIR"].IsDir())
	require.True(t, names["BADDIR"].IsDir())
}

func TestListDir_BadDirStopsAtInvalidEntry(t *testing.T) {
	s := attachTestSession(t)

	entries, err := s.ListDir(7)
	require.NoError(t, err)
	require.Empty(t, entries, "the well-formed GHOST1 record follows an invalid fnl and must never be seen")
}

func TestListDir_EmptySubdir(t *testing.T) {
	s := attachTestSession(t)

	entries, err := s.ListDir(6)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestReadFile_SingleCluster(t *testing.T) {
	s := attachTestSession(t)

	entries, err := s.ListDir(xtaf.RootCluster)
	require.NoError(t, err)
	var fileA xtaf.DirEntry
	for _, e := range entries {
		if e.Name == "FILEA" {
			fileA = e
		}
	}

	var buf bytes.Buffer
	require.NoError(t, s.ReadFile(fileA, &buf))
	require.Equal(t, 7000, buf.Len())
}

func TestReadFile_RejectsDirectory(t *testing.T) {
	s := attachTestSession(t)

	entries, err := s.ListDir(xtaf.RootCluster)
	require.NoError(t, err)
	var subdir xtaf.DirEntry
	for _, e := range entries {
		if e.Name == "SUBDIR" {
			subdir = e
		}
	}

	var buf bytes.Buffer
	err = s.ReadFile(subdir, &buf)
	require.ErrorIs(t, err, xtaf.ErrInvalidEntry)
}

func TestReadFileAt_RandomAccessAcrossClusters(t *testing.T) {
	s := attachTestSession(t)

	entries, err := s.ListDir(xtaf.RootCluster)
	require.NoError(t, err)
	var fileB xtaf.DirEntry
	for _, e := range entries {
		if e.Name == "FILEB" {
			fileB = e
		}
	}

	buf := make([]byte, 100)
	n, err := s.ReadFileAt(fileB, buf, 16384-50)
	require.NoError(t, err)
	require.Equal(t, 100, n)
}

func TestChangeDir_RootAndParent(t *testing.T) {
	s := attachTestSession(t)

	_, err := s.ListDir(xtaf.RootCluster) // seeds SUBDIR's dot-table entry
	require.NoError(t, err)

	require.NoError(t, s.ChangeDir("SUBDIR"))
	require.Equal(t, uint32(6), s.Cwd())

	require.NoError(t, s.ChangeDir(".."))
	require.Equal(t, xtaf.RootCluster, s.Cwd())

	require.NoError(t, s.ChangeDir("/"))
	require.Equal(t, xtaf.RootCluster, s.Cwd())
}

func TestChangeDir_DotDotAtRootStaysAtRoot(t *testing.T) {
	s := attachTestSession(t)

	require.NoError(t, s.ChangeDir(".."))
	require.Equal(t, xtaf.RootCluster, s.Cwd())
}

func TestChangeDir_UnknownNameLeavesCwdUntouched(t *testing.T) {
	s := attachTestSession(t)

	err := s.ChangeDir("NOSUCHDIR")
	require.ErrorIs(t, err, xtaf.ErrNotFound)
	require.Equal(t, xtaf.RootCluster, s.Cwd())
}
