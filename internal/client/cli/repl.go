package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Users(ctx context.Context) error
	Projects(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
}

// runREPL reads commands line by line until EOF or "exit"/"quit".
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help, whoami, users, projects [limit] [offset], create <name>,
//	  add <projectId> <userId>..., show <projectId>, logout, exit | quit
//
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ph %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if requiresSession(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, users, projects, create, add, show, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "users":
			_ = a.Users(ctx)

		case "projects", "ls":
			_ = a.Projects(ctx, args)

		case "create":
			_ = a.Create(ctx, args)

		case "add":
			_ = a.Add(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresSession(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "users", "projects", "ls", "create", "add", "show":
		return true
	}
	return false
}
