package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/attendance/internal/client/camera"
	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/config"
	"github.com/dmitrijs2005/attendance/internal/client/geo"
	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/client/nav"
	"github.com/dmitrijs2005/attendance/internal/client/services"
	"github.com/dmitrijs2005/attendance/internal/client/session"
	"github.com/dmitrijs2005/attendance/internal/client/views"
	"github.com/dmitrijs2005/attendance/internal/logging"
)

// authService is the part of services.AuthService the REPL drives.
type authService interface {
	nav.AuthState
	Initialize(ctx context.Context)
	Login(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username, email string, password []byte, isManager bool) error
	Logout(ctx context.Context) error
	Invalidate(ctx context.Context)
	User() *models.User
}

var _ authService = (*services.AuthService)(nil)

type App struct {
	auth    authService
	tokens  client.TokenSource
	nav     *nav.Navigator
	home    *views.Home
	history *views.History
	camera  *views.CameraFlow
	stats   views.StatsSource
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
	color  bool

	closers []func() error
}

// NewApp opens the session store under cfg.DataDir and wires the API
// client, services and views.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := session.Open(ctx, cfg.DataDir)
	if err != nil {
		log.Error(ctx, "error opening session store", "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Debug(ctx, "api client ready", "base_url", api.BaseURL(), "timeout", cfg.RequestTimeout)

	reader := bufio.NewReader(os.Stdin)
	app, err := newApp(api, store, cfg, log, reader, os.Stdout)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	app.color = isTerminal(int(os.Stdout.Fd()))
	app.closers = append(app.closers, store.Close)
	return app, nil
}

// newApp wires everything above the API client and the session store.
func newApp(api client.Client, store services.SessionStore, cfg *config.Config, log logging.Logger, reader *bufio.Reader, out io.Writer) (*App, error) {
	auth, err := services.NewAuthService(api, store, log)
	if err != nil {
		return nil, err
	}
	attendance, err := services.NewAttendanceService(api)
	if err != nil {
		return nil, err
	}

	a := &App{
		auth:   auth,
		tokens: store,
		stats:  attendance,
		log:    log,
		reader: reader,
		out:    out,
	}

	a.nav = nav.NewNavigator(auth)
	a.home = views.NewHome(attendance, log)
	a.history = views.NewHistory(attendance, cfg.HistoryPageSize)

	provider, permission := locationSource(cfg, a.readLine)
	locator := geo.NewLocator(provider, permission, cfg.LocationTimeout, log)
	a.camera = views.NewCameraFlow(camera.NewPromptCapturer(a.readLine), locator, attendance, log)
	a.camera.OnStateChange = func(s views.CameraState) {
		if s == views.CameraUploading {
			printlnFn("Uploading...")
		}
	}

	return a, nil
}

// locationSource picks the location provider: fixed coordinates win over
// a location command. Only the command asks for permission.
func locationSource(cfg *config.Config, read func(string) (string, error)) (geo.Provider, geo.Permission) {
	if loc, ok := cfg.FixedLocation(); ok {
		return geo.StaticProvider{Coordinates: loc}, geo.Granted{}
	}
	if fields := strings.Fields(cfg.LocationCommand); len(fields) > 0 {
		return geo.CommandProvider{Name: fields[0], Args: fields[1:]}, geo.NewPromptPermission(read)
	}
	return geo.NoProvider{}, geo.Granted{}
}

func (a *App) readLine(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) stack() nav.Stack {
	return a.nav.Stack()
}

// getStatus is the prompt label: the signed-in user and the current screen.
func (a *App) getStatus() string {
	screen := string(a.nav.Current())
	u := a.auth.User()
	if u == nil {
		return screen
	}
	if u.IsManager {
		return fmt.Sprintf("(%s, manager) %s", u.Username, screen)
	}
	return fmt.Sprintf("(%s) %s", u.Username, screen)
}

func (a *App) initSignalHandler(cancel context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run restores the session and serves the REPL until exit, EOF, SIGINT or
// SIGTERM, or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := a.initSignalHandler(cancel)
	defer stop()

	a.auth.Initialize(ctx)

	printlnFn("Welcome to the attendance CLI (type 'help' for commands)")
	if a.auth.User() != nil {
		_ = a.Home(ctx)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		printlnFn()
		printlnFn("Bye!")
	}
	return nil
}

func (a *App) Close() {
	a.nav.Close()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}
