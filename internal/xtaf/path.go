package xtaf

import (
	"fmt"
	"strings"
)

// ResolvePath walks pathname component by component, starting from the
// root if it begins with "/" and from the session's current working
// directory otherwise, and returns the cluster number of the directory
// or file it names. "." is a no-op component; ".." consults the dot
// table for the current cluster's parent and fails with ErrNotFound if
// no mapping has been recorded for it yet, matching uxtaf.c's
// resolve_path() (uxtaf.c:495-499), which fails the same way rather
// than silently returning to the root. Grounded on uxtaf.c's
// resolve_path()/cd().
func ResolvePath(s *Session, pathname string) (uint32, error) {
	cluster := s.cwd
	if strings.HasPrefix(pathname, "/") {
		cluster = RootCluster
	}

	for _, part := range strings.Split(pathname, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			parent, ok := s.Dots.Lookup(cluster)
			if !ok {
				return 0, fmt.Errorf("%w: no parent recorded for cluster %d", ErrNotFound, cluster)
			}
			cluster = parent
		default:
			entry, err := s.lookupChild(cluster, part)
			if err != nil {
				return 0, err
			}
			if !entry.IsDir() {
				cluster = entry.FirstCluster
				continue
			}
			cluster = entry.FirstCluster
			if cluster == 0 {
				// An empty directory's first cluster is sometimes
				// recorded as 0 in the wild; treat it as the root,
				// the only cluster that legitimately has no chain of
				// its own to walk.
				cluster = RootCluster
			}
		}
	}
	return cluster, nil
}

// ResolveFile resolves pathname to its terminal directory entry rather
// than a bare cluster number, for operations (cat) that need the
// entry's size/attributes as well as its location.
func ResolveFile(s *Session, pathname string) (DirEntry, error) {
	dir, base := splitPath(pathname)
	dirCluster := s.cwd
	if dir != "" {
		c, err := ResolvePath(s, dir)
		if err != nil {
			return DirEntry{}, err
		}
		dirCluster = c
	} else if strings.HasPrefix(pathname, "/") {
		dirCluster = RootCluster
	}
	return s.lookupChild(dirCluster, base)
}

// splitPath splits pathname into its parent directory path and final
// component, the same way path.Split does for "/"-separated paths but
// without pulling in the path package's file-extension assumptions.
func splitPath(pathname string) (dir, base string) {
	i := strings.LastIndex(pathname, "/")
	if i < 0 {
		return "", pathname
	}
	return pathname[:i], pathname[i+1:]
}
