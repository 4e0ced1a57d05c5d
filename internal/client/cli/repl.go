package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, path string) error
	PrintNav()
	Logout(ctx context.Context) error
	Forget(ctx context.Context) error
	Storage(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the authshell CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is cancelled, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	  - help             show available commands
//	  - nav              show the navigation links
//	  - go <path>        open a page: /, /login or /home
//	  - register         same as "go /"
//	  - login            same as "go /login"
//	  - home             same as "go /home"
//	  - logout           revoke the stored token and sign out
//	  - forget           clear local storage without contacting the server
//	  - storage          list the keys in local storage
//	  - exit | quit      leave the program
//
// A failing command prints a message and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("authshell %s> ", statusFn()))
		line, err := readLine(ctx, reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: nav, go <path>, register, login, home, logout, forget, storage, exit")
			} else {
				printlnFn("Available commands: nav, go <path>, register, login, home, forget, storage, exit")
			}

		case "nav":
			a.PrintNav()

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			cmdErr = a.Navigate(ctx, args[0])

		case "register":
			cmdErr = a.Navigate(ctx, RouteRegister)

		case "login":
			cmdErr = a.Navigate(ctx, RouteLogin)

		case "home":
			cmdErr = a.Navigate(ctx, RouteHome)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "forget":
			cmdErr = a.Forget(ctx)

		case "storage":
			cmdErr = a.Storage(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}
