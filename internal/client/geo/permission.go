package geo

import (
	"context"
	"strings"
	"sync"
)

// Permission gates access to the provider.
type Permission interface {
	Request(ctx context.Context) (bool, error)
}

// Granted never asks.
type Granted struct{}

func (Granted) Request(context.Context) (bool, error) { return true, nil }

// PromptPermission asks the user the first time and remembers the answer
// for the rest of the process.
type PromptPermission struct {
	read func(prompt string) (string, error)

	mu      sync.Mutex
	asked   bool
	granted bool
}

func NewPromptPermission(read func(prompt string) (string, error)) *PromptPermission {
	return &PromptPermission{read: read}
}

const permissionPrompt = "Allow this app to use your location? [y/N]"

func (p *PromptPermission) Request(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.asked {
		return p.granted, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	line, err := p.read(permissionPrompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		p.granted = true
	}
	p.asked = true
	return p.granted, nil
}
