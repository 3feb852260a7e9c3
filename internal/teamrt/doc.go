// Package teamrt drives the three team-side modes: standalone wait,
// standalone challenge, and controller-driven simulation. It fans out one
// goroutine per opponent connection (challenge or accepted) and collects
// each battle's narrative into a per-round buffer, printed at round
// boundaries the same way internal/battle's own buffer is drained and
// sorted.
package teamrt
