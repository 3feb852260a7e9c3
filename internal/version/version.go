// Package version carries the module's semver.Version, shared by both
// the controller and team binaries so that -version/-build-info print
// identical strings regardless of which one is invoked.
package version

import "github.com/maloquacious/semver"

// Version is this module's current release, grounded on the teacher's
// top-level version var in every cmd/*/main.go.
var Version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}
