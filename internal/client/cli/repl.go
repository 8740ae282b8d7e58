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
	Check(ctx context.Context) error
	CheckFile(ctx context.Context, path string) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Theme(ctx context.Context) error
}

// runREPL starts the read-eval-print loop of the TruthLens CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	check              check a pasted/typed article
//	checkfile <path>   check a .txt article file
//	login | register   authenticate / create an account
//	profile | edit     view or edit the profile (requires login)
//	logout             drop the stored session
//	theme              toggle light/dark
//	help, exit, quit
//
// Handlers render their own errors inline, so their return values are
// ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tl %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: check, checkfile <path>, profile, edit, theme, logout, exit")
			} else {
				printlnFn("Available commands: check, checkfile <path>, login, register, theme, exit")
			}

		case "check":
			_ = a.Check(ctx)

		case "checkfile":
			if len(args) == 0 {
				printlnFn("Usage: checkfile <path>")
				continue
			}
			_ = a.CheckFile(ctx, args[0])

		case "login":
			_ = a.Login(ctx)

		case "register", "signup":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "theme":
			_ = a.Theme(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}
