// Package cli implements the interactive Horios command line: a small REPL
// over the gRPC client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/Santi-a-ux/Horios-OTT/internal/api"
	"github.com/Santi-a-ux/Horios-OTT/internal/client/client"
	"github.com/Santi-a-ux/Horios-OTT/internal/client/config"
	"github.com/Santi-a-ux/Horios-OTT/internal/netx"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getYesNo      = GetYesNo
)

// App is the interactive client: one session, one reader, one writer.
type App struct {
	api    client.Client
	reader *bufio.Reader
	out    io.Writer
	user   *api.User

	upload func(ctx context.Context, url, path string) error
}

// NewApp connects to the server named in c and reads from stdin.
func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHoriosClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c client.Client, in io.Reader, out io.Writer) *App {
	httpClient := &http.Client{}
	return &App{
		api:    c,
		reader: bufio.NewReader(in),
		out:    out,
		upload: func(ctx context.Context, url, path string) error {
			return netx.UploadFile(ctx, httpClient, url, path)
		},
	}
}

// Run pings the server, then runs the prompt loop until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	if err := a.api.Ping(ctx); err != nil {
		a.printf("Warning: %v\n", err)
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.user == nil || !a.isLoggedIn() {
		return "guest"
	}
	return fmt.Sprintf("%s (%s)", a.user.Email, a.user.Role)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail reports err to the user and returns it.
func (a *App) fail(err error) error {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		a.printf("Please log in first.\n")
	case errors.Is(err, client.ErrForbidden):
		a.printf("Not allowed for your role.\n")
	case errors.Is(err, client.ErrNotFound):
		a.printf("Not found.\n")
	default:
		a.printf("Error: %v\n", err)
	}
	return err
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("an id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
