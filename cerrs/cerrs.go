// Package cerrs implements constant errors.
package cerrs

// Error defines a constant error
type Error string

// Error implements the Errors interface
func (e Error) Error() string { return string(e) }

// Errors shared by both the controller and the team binary. Each maps to
// exactly one stderr line and exit code per the external interface; package
// exitcode owns that mapping. Errors specific to a single package's
// vocabulary (bad rulebook syntax, illegal attack, malformed team file, ...)
// live next to the code that raises them instead of here.
const (
	ErrProtocol       = Error("protocol error")
	ErrSystem         = Error("system error")
	ErrPeerClosed     = Error("peer closed the connection")
	ErrControllerLost = Error("unexpected loss of controller")
	ErrTeamLost       = Error("unexpected loss of team")
)
