package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Users(ctx context.Context) error
	Role(ctx context.Context, args []string) error
	Videos(ctx context.Context) error
	Video(ctx context.Context, args []string) error
	Play(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Create(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, exit"
	memberHelp = "Available commands: me, videos, video <id>, play <id>, users, role <id> <ROLE>, upload <path>, create, logout, exit"
)

// runREPL reads commands from reader until EOF, exit or quit. Command
// errors are reported by the commands themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "horios [%s]> ", statusFn())

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				fmt.Fprintln(w)
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, memberHelp)
			} else {
				fmt.Fprintln(w, guestHelp)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me", "whoami":
			_ = a.Me(ctx)

		case "users":
			_ = a.Users(ctx)

		case "role":
			_ = a.Role(ctx, args)

		case "videos", "ls":
			_ = a.Videos(ctx)

		case "video":
			_ = a.Video(ctx, args)

		case "play":
			_ = a.Play(ctx, args)

		case "upload":
			_ = a.Upload(ctx, args)

		case "create":
			_ = a.Create(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
