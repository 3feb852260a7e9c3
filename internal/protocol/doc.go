// Package protocol implements the newline-delimited line protocol spoken
// between the controller and team processes, and between two teams during
// a battle. Each line's first whitespace-separated token is its tag;
// Reader.ReadMessage recognises the tag and returns a typed Message rather
// than a bag of positional strings.
package protocol
