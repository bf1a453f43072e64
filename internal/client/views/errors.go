package views

import "errors"

var (
	ErrBusy             = errors.New("operation already in progress")
	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// User-facing messages.
const (
	MsgFillAllFields      = "Please fill in all fields"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgInvalidCredentials = "Invalid credentials"
	MsgRegistrationFailed = "Registration failed"
	MsgCaptureFailed      = "Failed to take photo"
	MsgMarkFailed         = "Failed to mark attendance"
	MsgCheckInSuccess     = "Check-in successful!"
	MsgCheckOutSuccess    = "Check-out successful!"
	MsgNoRecords          = "No attendance records yet"
	MsgNoRecordsHint      = "Start marking your attendance to see history here"
)

// ValidationMessage returns the message for a form validation error, or
// "" when err is not one.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return MsgFillAllFields
	case errors.Is(err, ErrPasswordMismatch):
		return MsgPasswordMismatch
	default:
		return ""
	}
}
