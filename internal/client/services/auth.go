package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/logging"
)

// State is the auth lifecycle stage.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrNilDependency = errors.New("nil dependency")

// SessionStore is the persisted half of the session.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}

// AuthClient is the subset of the API client AuthService talks to.
type AuthClient interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, username string, password []byte) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Listener is called after every state transition with the new state.
type Listener func(State)

// AuthService is the auth session manager.
//
//   - Initialize: restore the session from the store, once.
//   - Login/Register: authenticate remotely, persist, switch to authenticated.
//   - Logout: best-effort remote logout, then always drop the local session.
type AuthService struct {
	client AuthClient
	store  SessionStore
	log    logging.Logger

	initOnce sync.Once

	mu        sync.RWMutex
	state     State
	user      *models.User
	listeners map[int]Listener
	nextID    int
}

// NewAuthService wires the service. All collaborators are required.
func NewAuthService(c AuthClient, store SessionStore, log logging.Logger) (*AuthService, error) {
	switch {
	case c == nil:
		return nil, fmt.Errorf("auth service: client: %w", ErrNilDependency)
	case store == nil:
		return nil, fmt.Errorf("auth service: session store: %w", ErrNilDependency)
	case log == nil:
		return nil, fmt.Errorf("auth service: logger: %w", ErrNilDependency)
	}

	return &AuthService{
		client:    c,
		store:     store,
		log:       log.With("component", "auth"),
		state:     StateLoading,
		listeners: make(map[int]Listener),
	}, nil
}

// Initialize loads the persisted session. Only the first call does any work.
// Storage failures are logged and end in the unauthenticated state.
func (a *AuthService) Initialize(ctx context.Context) {
	a.initOnce.Do(func() {
		user, err := a.restore(ctx)
		if err != nil {
			a.log.Error(ctx, "failed to load session", "error", err)
		}
		a.setUser(user)
	})
}

func (a *AuthService) restore(ctx context.Context) (*models.User, error) {
	token, err := a.store.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	user, err := a.store.User(ctx)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if token == "" || user == nil {
		return nil, nil
	}
	return user, nil
}

// Login authenticates and persists the session. On failure the state is
// left untouched and the client error is returned as is.
func (a *AuthService) Login(ctx context.Context, username string, password []byte) error {
	resp, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return a.establish(ctx, resp)
}

// Register creates the account and signs in with it.
func (a *AuthService) Register(ctx context.Context, username, email string, password []byte, isManager bool) error {
	resp, err := a.client.Register(ctx, models.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  string(password),
		IsManager: isManager,
	})
	if err != nil {
		return err
	}
	return a.establish(ctx, resp)
}

func (a *AuthService) establish(ctx context.Context, resp *models.AuthResponse) error {
	if err := a.store.Save(ctx, resp.AccessToken, resp.User); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	user := resp.User
	a.setUser(&user)
	a.log.Info(ctx, "signed in", "user_id", user.ID, "username", user.Username)
	return nil
}

// Logout ends the session. The remote call is best effort; local state is
// always cleared. A failure to clear the store is returned after the
// in-memory session has already been dropped.
func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "remote logout failed", "error", err)
	}

	clearErr := a.store.Clear(ctx)
	if clearErr != nil {
		a.log.Error(ctx, "failed to clear session", "error", clearErr)
	}
	a.setUser(nil)

	if clearErr != nil {
		return fmt.Errorf("clear session: %w", clearErr)
	}
	return nil
}

// Invalidate drops the session after the server rejected the token.
func (a *AuthService) Invalidate(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
	a.setUser(nil)
}

func (a *AuthService) setUser(user *models.User) {
	a.mu.Lock()
	a.user = user
	if user != nil {
		a.state = StateAuthenticated
	} else {
		a.state = StateUnauthenticated
	}
	state := a.state
	listeners := make([]Listener, 0, len(a.listeners))
	for id := 0; id < a.nextID; id++ {
		if l, ok := a.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	a.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}

// Subscribe registers fn for state transitions and returns a function that
// removes it. Listeners run on the goroutine that caused the transition.
func (a *AuthService) Subscribe(fn Listener) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *AuthService) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// User returns a copy of the signed-in user, or nil.
func (a *AuthService) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *AuthService) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user != nil
}

func (a *AuthService) IsLoading() bool {
	return a.State() == StateLoading
}

var _ AuthClient = (client.Client)(nil)
