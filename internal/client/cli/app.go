package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/client/app"
	"github.com/dmitrijs2005/ledgersync/internal/client/client"
	"github.com/dmitrijs2005/ledgersync/internal/client/config"
	"github.com/dmitrijs2005/ledgersync/internal/client/localstore"
	"github.com/dmitrijs2005/ledgersync/internal/filex"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	repos  *app.Repositories
	remote pinger
	logger logging.Logger
	out    io.Writer
	in     io.Reader

	closers []func() error

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the local database, connects the gRPC client and builds the
// repositories. A missing access token is asked for on the terminal.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	reader := bufio.NewReader(os.Stdin)

	token := c.AccessToken
	if token == "" && isTerminal(int(os.Stdin.Fd())) {
		t, err := GetToken(os.Stdout)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		token = t
	}

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := localstore.Open(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, token)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logFile, closeLog := openLogFile(dbPath + ".log")
	logger := logging.NewJSON(logFile, "info")

	repos := app.New(db, apiClient,
		app.WithAsyncPush(c.AsyncPush),
		app.WithLogger(logger))

	a := newApp(c, repos, apiClient, logger, reader, os.Stdout)
	a.closers = []func() error{apiClient.Close, db.Close, closeLog}
	return a, nil
}

func newApp(c *config.Config, repos *app.Repositories, remote pinger, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{config: c, repos: repos, remote: remote, logger: logger, in: in, out: out, mode: ModeOffline}
}

// openLogFile keeps sync logging out of the interactive terminal.
func openLogFile(path string) (io.Writer, func() error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() error { return nil }
	}
	return f, f.Close
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s)", a.Mode())
}

// Run starts the pulls and the connectivity watcher, then serves the REPL
// until the user exits or ctx is done. Background work is stopped and
// drained before Run returns.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.repos.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	printlnFn("Welcome to ledgersync (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.in))

	cancel()
	wg.Wait()
	_ = a.repos.Wait()
	a.repos.Close()
}

// Close releases the gRPC connection and the database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultOnlineCheckInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.remote.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
