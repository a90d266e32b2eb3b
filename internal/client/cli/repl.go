package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context, name string) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Model Society CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The same reader serves interactive prompts
// inside commands. The loop exits on EOF, on context cancellation, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help             — show available commands
//	  - login            — authenticate
//	  - profile <name>   — show a member's public profile
//	  - status           — show session state
//	  - exit | quit      — leave the program
//
//	Logged in, additionally:
//	  - whoami           — refresh and print the current identity
//	  - logout           — forget the session
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("ms %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile <name>, status, logout, exit")
			} else {
				printlnFn("Available commands: login, profile <name>, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			if len(args) == 0 {
				printlnFn("Usage: profile <name>")
				break
			}
			_ = a.Profile(ctx, strings.Join(args, " "))

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if eof {
			return
		}
	}
}
