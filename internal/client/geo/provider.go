package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"

	"github.com/dmitrijs2005/attendance/internal/client/models"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrNoProvider       = errors.New("no location provider configured")
	ErrInvalidLocation  = errors.New("invalid coordinates")
)

// Provider reads the current position.
type Provider interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// StaticProvider always reports the same position, e.g. from -lat/-lon.
type StaticProvider struct {
	Coordinates models.Coordinates
}

func (p StaticProvider) Locate(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return p.Coordinates, Validate(p.Coordinates)
}

// NoProvider is used when nothing is configured.
type NoProvider struct{}

func (NoProvider) Locate(context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, ErrNoProvider
}

// CommandProvider runs an external command that prints a JSON object with
// "latitude" and "longitude" fields, such as termux-location.
type CommandProvider struct {
	Name string
	Args []string
}

func (p CommandProvider) Locate(ctx context.Context) (models.Coordinates, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Name, p.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Coordinates{}, ctxErr
		}
		return models.Coordinates{}, fmt.Errorf("%s: %w: %s", p.Name, err, bytes.TrimSpace(stderr.Bytes()))
	}

	var out struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return models.Coordinates{}, fmt.Errorf("%s: decode output: %w", p.Name, err)
	}
	if out.Latitude == nil || out.Longitude == nil {
		return models.Coordinates{}, fmt.Errorf("%s: %w: missing latitude or longitude", p.Name, ErrInvalidLocation)
	}

	c := models.Coordinates{Latitude: *out.Latitude, Longitude: *out.Longitude}
	return c, Validate(c)
}

// Validate checks the coordinate ranges.
func Validate(c models.Coordinates) error {
	switch {
	case math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude):
		return fmt.Errorf("%w: NaN", ErrInvalidLocation)
	case c.Latitude < -90 || c.Latitude > 90:
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, c.Latitude)
	case c.Longitude < -180 || c.Longitude > 180:
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, c.Longitude)
	}
	return nil
}
