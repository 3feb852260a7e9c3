// Package netlisten opens the TCP listeners used by the controller and by
// team processes (standalone wait, or the ephemeral listener a team binds
// in controller-simulation mode). It sets SO_REUSEADDR explicitly, the way
// the original implementation did, and reports the bound port synchronously
// instead of requiring a caller to poll for it.
package netlisten
