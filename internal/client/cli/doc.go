// Package cli is the interactive ProjectHub command-line client.
//
// App wires configuration and the gRPC client to a small REPL. Commands
// that need a session are refused until register or login succeeds; the
// session lives only in memory.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
