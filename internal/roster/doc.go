// Package roster holds the in-memory Team: four Members, each with a
// circular attack ring drawn from its Agent's legal attacks, a grid
// position, and a circular direction ring. Load parses the team file
// format described alongside this package's tests.
package roster
