// Package cli provides the interactive attendance command-line client.
//
// It wires configuration, the local session store, the API client and the
// views, then runs a REPL. The commands on offer follow the navigation
// stack: login and signup while signed out; home, mark, history, stats and
// logout while signed in. Nothing is accepted while the session loads.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or ctx is cancelled.
package cli
