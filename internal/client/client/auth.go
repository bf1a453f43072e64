package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/common"
)

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.ClientType == "" {
		req.ClientType = common.ClientType
	}

	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login sends the credentials. The password slice is not retained.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*models.AuthResponse, error) {
	req := models.LoginRequest{
		Username:   username,
		Password:   string(password),
		ClientType: common.ClientType,
	}

	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the server to drop the current token.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
