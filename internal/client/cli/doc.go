// Package cli provides the interactive authshell command-line client.
//
// It wires configuration, local storage, the API client, the session store
// and an interactive REPL. The shell has three pages that mirror the
// navigation bar it prints:
//
//   - "/"       registration form
//   - "/login"  login form
//   - "/home"   landing page showing who is signed in
//
// The App owns the only session.Store. Forms write to it through the auth
// service; the home page reads it. Moving between pages never resets it.
// A background watcher pings the backend and shows online/offline in the
// prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
