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
	isLoggedIn(ctx context.Context) bool
	// dispatch routes a full command line to its handler and reports
	// whether the command is known. One table serves both the REPL and
	// the guard's post-login replay, so the two can never drift.
	dispatch(ctx context.Context, line string) (bool, error)
}

// runREPL starts a read–eval–print loop for the Sentinel CLI.
//
// It reads a line from the provided scanner and hands it to the dispatch
// table on 'a'. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Signed out:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - google         — authenticate with a Google ID token
//	  - forgot         — request a password reset email
//	  - reset          — set a new password using the emailed reset token
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - dashboard [overview|changepassword|viewprofile|editprofile]
//	  - images         — list uploaded images
//	  - upload         — upload an image and run the detection pipeline
//	  - matches [id]   — review pending matches for an image
//	  - history [confirmed|rejected]
//	  - reports        — list DMCA reports, download or email them
//	  - status | logout | exit
//
// Commands that need a session are still accepted while signed out: the
// guard intercepts them before any network traffic and routes through the
// login flow first.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sentinel> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: dashboard, images, upload, matches, history, reports, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, google, forgot, reset, exit")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			known, _ := a.dispatch(ctx, line)
			if !known {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}
