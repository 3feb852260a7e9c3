// Package cerrs defines constant error types using a custom Error string type.
// It centralizes the handful of error values that both the controller and
// team binaries must recognise and render identically. The Error type
// supports comparison via errors.Is().
package cerrs
