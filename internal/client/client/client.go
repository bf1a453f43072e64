package client

import (
	"context"

	"github.com/dmitrijs2005/attendance/internal/client/models"
)

// Client is the API surface used by the services.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, username string, password []byte) (*models.AuthResponse, error)
	Logout(ctx context.Context) error

	CheckIn(ctx context.Context, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error)
	CheckOut(ctx context.Context, imagePath string, loc *models.Coordinates) (*models.AttendanceRecord, error)
	Records(ctx context.Context, page, perPage int) (*models.RecordsPage, error)
	Stats(ctx context.Context) (*models.AttendanceStats, error)
}

// TokenSource supplies the bearer token for each request. An empty token
// means "send unauthenticated".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
