// Package exitcode maps the sentinel errors raised throughout the
// controller and team binaries to the stderr message and numeric process
// exit code the command-line contract promises. The two binaries use
// disjoint numbering for the same conceptual failures, so this package
// exposes one mapping function per binary rather than a single shared one.
package exitcode
