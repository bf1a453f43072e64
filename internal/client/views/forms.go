package views

import (
	"crypto/subtle"
	"strings"

	"github.com/dmitrijs2005/attendance/internal/common"
)

type LoginForm struct {
	Username string
	Password []byte
}

// Validate requires both fields.
func (f *LoginForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" || len(f.Password) == 0 {
		return ErrMissingFields
	}
	return nil
}

// Wipe zeroes the password.
func (f *LoginForm) Wipe() {
	common.WipeByteArray(f.Password)
}

type SignupForm struct {
	Username  string
	Email     string
	Password  []byte
	Confirm   []byte
	IsManager bool
}

// Validate requires username, email and password, and the confirmation to
// match the password.
func (f *SignupForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" || strings.TrimSpace(f.Email) == "" || len(f.Password) == 0 {
		return ErrMissingFields
	}
	if subtle.ConstantTimeCompare(f.Password, f.Confirm) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func (f *SignupForm) Wipe() {
	common.WipeByteArray(f.Password)
	common.WipeByteArray(f.Confirm)
}
