// Package kioskpack holds build information shared by the CLI and the
// import pipeline.
package kioskpack

var (
	// Version of the application. It is also the version packs are checked
	// against when they declare compat.min_app_semver.
	Version = "v0.4.2"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
