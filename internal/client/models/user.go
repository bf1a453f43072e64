package models

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsManager bool   `json:"is_manager"`
}

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	ClientType string `json:"client_type"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsManager  bool   `json:"is_manager"`
	ClientType string `json:"client_type"`
}
