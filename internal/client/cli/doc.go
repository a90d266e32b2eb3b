// Package cli provides the interactive Model Society command-line client.
//
// It wires configuration, the local session database, the request gateway
// and the application services, then runs a REPL until the user exits.
//
// Commands:
//   - login / logout
//   - whoami: refresh and print the current identity
//   - profile <name>: show a member's public profile
//   - status: session state and token expiry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or stdin is closed. See App and runREPL for details.
package cli
