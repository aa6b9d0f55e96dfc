package console

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Passwd(ctx context.Context) error
	Users(ctx context.Context) error
	Guilds(ctx context.Context) error
	CreateGuild(ctx context.Context) error
	ShowGuild(ctx context.Context) error
	RenameGuild(ctx context.Context) error
	AddChannel(ctx context.Context) error
	Post(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the console.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// print their own errors. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("guildchat %s > ", statusFn())
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd := strings.Fields(line)[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, passwd, users, guilds, mkguild, guild, rename, mkchannel, post, logout, exit")
			} else {
				printlnFn("Available commands: register, login, users, guilds, guild, exit")
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "passwd":
			_ = a.Passwd(ctx)
		case "users":
			_ = a.Users(ctx)
		case "guilds":
			_ = a.Guilds(ctx)
		case "mkguild":
			_ = a.CreateGuild(ctx)
		case "guild":
			_ = a.ShowGuild(ctx)
		case "rename":
			_ = a.RenameGuild(ctx)
		case "mkchannel":
			_ = a.AddChannel(ctx)
		case "post":
			_ = a.Post(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
