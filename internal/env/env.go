// Package env holds build-time metadata stamped via -ldflags.
package env

// These are overridden at build time with -ldflags
// "-X github.com/xtaflab/xtafkit/internal/env.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
