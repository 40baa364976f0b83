package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/projecthub/internal/client/client"
	"github.com/dmitrijs2005/projecthub/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

// Root greets the user, reports whether the server answers and runs the REPL
// on the app's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ProjectHub CLI (type 'help' for commands)")

	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Server %s is not reachable yet: %v\n", a.config.ServerEndpointAddr, err)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) report(err error) error {
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
