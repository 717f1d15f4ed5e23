package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Search(ctx context.Context, query string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	GoToPage(ctx context.Context, page int) error
	Show(ctx context.Context, imdbID string) error

	Add(ctx context.Context, imdbID string) error
	Remove(ctx context.Context, imdbID string) error
	Toggle(ctx context.Context, imdbID string) error
	List(ctx context.Context) error
	Clear(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: search <title>, next, prev, page <n>, show <id>, add <id>, remove <id>, toggle <id>, (l)ist, clear, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the moviedb CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Prompts and messages go to out, the same
// writer the App renders into. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - search <title>   search the catalog (first page)
//	  - next | prev      page through the last search
//	  - page <n>         jump to a page of the last search
//	  - show <id>        full details of a title
//	  - add <id>         save a title to the watchlist
//	  - remove <id>      drop a title from the watchlist
//	  - toggle <id>      add or remove, whichever applies
//	  - list | l         show the watchlist
//	  - clear            empty the watchlist (asks first)
//	  - logout           log out
//	  - exit | quit      leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "moviedb %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
			continue
		}

		var cmdErr error
		if a.isLoggedIn() {
			cmdErr = dispatchLoggedIn(ctx, a, out, cmd, args)
		} else {
			cmdErr = dispatchLoggedOut(ctx, a, out, cmd)
		}
		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}

func dispatchLoggedOut(ctx context.Context, a execIface, out io.Writer, cmd string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "search", "next", "prev", "page", "show", "add", "remove", "toggle", "l", "list", "clear", "logout":
		fmt.Fprintln(out, "Please log in or register first.")
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
	}
	return nil
}

func dispatchLoggedIn(ctx context.Context, a execIface, out io.Writer, cmd string, args []string) error {
	switch cmd {
	case "search":
		if len(args) == 0 {
			fmt.Fprintln(out, "Usage: search <title>")
			return nil
		}
		return a.Search(ctx, strings.Join(args, " "))

	case "next":
		return a.NextPage(ctx)

	case "prev":
		return a.PrevPage(ctx)

	case "page":
		n, err := singleInt(args)
		if err != nil {
			fmt.Fprintln(out, "Usage: page <n>")
			return nil
		}
		return a.GoToPage(ctx, n)

	case "show", "add", "remove", "toggle":
		if len(args) != 1 {
			fmt.Fprintf(out, "Usage: %s <imdb id>\n", cmd)
			return nil
		}
		id := args[0]
		switch cmd {
		case "show":
			return a.Show(ctx, id)
		case "add":
			return a.Add(ctx, id)
		case "remove":
			return a.Remove(ctx, id)
		default:
			return a.Toggle(ctx, id)
		}

	case "l", "list":
		return a.List(ctx)

	case "clear":
		return a.Clear(ctx)

	case "logout":
		return a.Logout(ctx)

	case "register", "login":
		fmt.Fprintln(out, "Already logged in; logout first.")

	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
	}
	return nil
}

func singleInt(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("want one argument")
	}
	return strconv.Atoi(args[0])
}
