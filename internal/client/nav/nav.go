// Package nav decides which screens are reachable from the auth state.
//
// The navigator exposes exactly one stack at a time: nothing while the
// session is loading, the sign-in screens when signed out, and the
// attendance screens when signed in. A screen outside the current stack
// cannot be opened.
package nav

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/attendance/internal/client/services"
)

type Screen string

const (
	ScreenLogin   Screen = "login"
	ScreenSignup  Screen = "signup"
	ScreenHome    Screen = "home"
	ScreenCamera  Screen = "camera"
	ScreenHistory Screen = "history"
	ScreenStats   Screen = "stats"
)

// Stack is an ordered set of screens; the first one is its root.
type Stack struct {
	name    string
	screens []Screen
}

var (
	StackNone            = Stack{name: "none"}
	StackUnauthenticated = Stack{name: "unauthenticated", screens: []Screen{ScreenLogin, ScreenSignup}}
	StackAuthenticated   = Stack{name: "authenticated", screens: []Screen{ScreenHome, ScreenCamera, ScreenHistory, ScreenStats}}
)

func (s Stack) Name() string { return s.name }

// Root is the screen shown when the stack is entered, "" for StackNone.
func (s Stack) Root() Screen {
	if len(s.screens) == 0 {
		return ""
	}
	return s.screens[0]
}

func (s Stack) Allows(screen Screen) bool {
	return slices.Contains(s.screens, screen)
}

func (s Stack) Screens() []Screen {
	return slices.Clone(s.screens)
}

// Resolve maps the auth state to its stack.
func Resolve(state services.State) Stack {
	switch state {
	case services.StateAuthenticated:
		return StackAuthenticated
	case services.StateUnauthenticated:
		return StackUnauthenticated
	default:
		return StackNone
	}
}

var ErrUnreachable = errors.New("screen is not reachable")

// AuthState is what the navigator observes.
type AuthState interface {
	State() services.State
	Subscribe(fn services.Listener) (unsubscribe func())
}

var _ AuthState = (*services.AuthService)(nil)

// Navigator tracks the current stack and the screen history within it.
type Navigator struct {
	mu      sync.Mutex
	stack   Stack
	history []Screen

	unsubscribe func()
}

// NewNavigator starts on the stack for the current auth state and follows
// every later transition, resetting to the new stack's root.
func NewNavigator(auth AuthState) *Navigator {
	n := &Navigator{}
	n.Sync(auth.State())
	n.unsubscribe = auth.Subscribe(n.Sync)
	return n
}

// Sync switches to the stack for state. Staying on the same stack keeps
// the history.
func (n *Navigator) Sync(state services.State) {
	stack := Resolve(state)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stack.name == stack.name && len(n.history) > 0 {
		return
	}
	n.stack = stack
	n.history = nil
	if root := stack.Root(); root != "" {
		n.history = []Screen{root}
	}
}

func (n *Navigator) Stack() Stack {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack
}

// Current is the visible screen, "" when nothing is rendered.
func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// Navigate pushes screen. Navigating to the current screen is a no-op.
func (n *Navigator) Navigate(screen Screen) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.stack.Allows(screen) {
		return fmt.Errorf("%w: %s in %s stack", ErrUnreachable, screen, n.stack.name)
	}
	if len(n.history) > 0 && n.history[len(n.history)-1] == screen {
		return nil
	}
	if i := slices.Index(n.history, screen); i >= 0 {
		n.history = n.history[:i+1]
		return nil
	}
	n.history = append(n.history, screen)
	return nil
}

// Back pops the current screen and returns the one below it. At the root
// it stays put.
func (n *Navigator) Back() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.history) > 1 {
		n.history = n.history[:len(n.history)-1]
	}
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// Close stops following auth transitions.
func (n *Navigator) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
	}
}
