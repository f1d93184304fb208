// Package buildinfo carries the release stamp. Set it with
//
//	-ldflags "-X turnclock/internal/buildinfo.Version=v1.2.0 -X turnclock/internal/buildinfo.Commit=abc1234 -X turnclock/internal/buildinfo.Date=2026-10-18"
package buildinfo

import "github.com/rs/zerolog"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version when released, else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// Stamp adds the build fields to a log event.
func Stamp(e *zerolog.Event) *zerolog.Event {
	return e.Str("version", Version).Str("commit", Commit).Str("built", Date)
}
