// Package services holds the application services of the attendance client.
//
// AuthService owns the in-memory session (the signed-in user) and keeps it
// in step with the persisted session store. It is constructed explicitly
// and handed to whoever needs it; consumers observe state changes through
// Subscribe.
//
// AttendanceService is a thin layer over the API client used by the views.
package services
