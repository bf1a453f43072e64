package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/attendance/internal/client/nav"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	stack() nav.Stack
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Home(ctx context.Context) error
	Mark(ctx context.Context) error
	History(ctx context.Context) error
	More(ctx context.Context) error
	Refresh(ctx context.Context) error
	Stats(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

type command struct {
	screen nav.Screen
	run    func(execIface, context.Context) error
}

// commands maps each REPL word to the screen it belongs to. A command is
// accepted only when its screen is in the current stack.
var commands = map[string]command{
	"login":    {nav.ScreenLogin, execIface.Login},
	"signup":   {nav.ScreenSignup, execIface.Signup},
	"register": {nav.ScreenSignup, execIface.Signup},
	"home":     {nav.ScreenHome, execIface.Home},
	"whoami":   {nav.ScreenHome, execIface.WhoAmI},
	"logout":   {nav.ScreenHome, execIface.Logout},
	"mark":     {nav.ScreenCamera, execIface.Mark},
	"history":  {nav.ScreenHistory, execIface.History},
	"more":     {nav.ScreenHistory, execIface.More},
	"refresh":  {nav.ScreenHistory, execIface.Refresh},
	"stats":    {nav.ScreenStats, execIface.Stats},
}

// helpOrder lists the commands in the order help shows them. Aliases are
// left out.
var helpOrder = []string{"login", "signup", "home", "whoami", "logout", "mark", "history", "more", "refresh", "stats"}

// helpFor lists the commands reachable from stack's screens, or "" when
// the stack has none.
func helpFor(stack nav.Stack) string {
	var names []string
	for _, screen := range stack.Screens() {
		for _, name := range helpOrder {
			if commands[name].screen == screen {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "Available commands: " + strings.Join(append(names, "exit"), ", ")
}

// runREPL starts a simple read-eval-print loop for the attendance CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Handlers read their own prompts from the
// same reader. The loop exits on EOF, on "exit"/"quit", or when ctx is
// done.
//
// Prompt & Commands
//
//	Signed out:
//	  - help             - show available commands
//	  - login            - sign in
//	  - signup|register  - create an account
//	  - exit | quit      - leave the program
//
//	Signed in:
//	  - help             - show available commands
//	  - home             - current status and last tiredness score
//	  - mark             - check in or out with a photo
//	  - history          - first page of attendance records
//	  - more             - next page of records
//	  - refresh          - reload history from the first page
//	  - stats            - aggregate statistics
//	  - whoami           - account and session details
//	  - logout           - sign out
//	  - exit | quit      - leave the program
//
// Errors returned by handlers are not fatal; handlers print their own
// user-facing messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("att %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if help := helpFor(a.stack()); help != "" {
				printlnFn(help)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.stack().Allows(c.screen) {
			printlnFn(fmt.Sprintf("'%s' is not available now. Type 'help' for commands.", cmd))
			continue
		}
		_ = c.run(a, ctx)
	}
}
