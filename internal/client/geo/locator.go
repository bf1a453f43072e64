package geo

import (
	"context"
	"time"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/logging"
)

const DefaultTimeout = 15 * time.Second

// Locator combines the permission step and the provider.
type Locator struct {
	provider   Provider
	permission Permission
	timeout    time.Duration
	log        logging.Logger
}

// NewLocator builds a Locator. nil provider/permission mean NoProvider and
// Granted; a non-positive timeout means DefaultTimeout.
func NewLocator(p Provider, perm Permission, timeout time.Duration, log logging.Logger) *Locator {
	if p == nil {
		p = NoProvider{}
	}
	if perm == nil {
		perm = Granted{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Locator{provider: p, permission: perm, timeout: timeout, log: log.With("component", "geo")}
}

// Current returns the device position, or ZeroCoordinates with the reason
// when it could not be determined.
func (l *Locator) Current(ctx context.Context) (models.Coordinates, error) {
	c, err := l.locate(ctx)
	if err != nil {
		l.log.Warn(ctx, "location unavailable, using 0,0", "error", err)
		return models.ZeroCoordinates, err
	}
	return c, nil
}

func (l *Locator) locate(ctx context.Context) (models.Coordinates, error) {
	ok, err := l.permission.Request(ctx)
	if err != nil {
		return models.Coordinates{}, err
	}
	if !ok {
		return models.Coordinates{}, ErrPermissionDenied
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type result struct {
		c   models.Coordinates
		err error
	}
	done := make(chan result, 1)
	go func() {
		c, err := l.provider.Locate(ctx)
		done <- result{c, err}
	}()

	select {
	case r := <-done:
		return r.c, r.err
	case <-ctx.Done():
		return models.Coordinates{}, ctx.Err()
	}
}
