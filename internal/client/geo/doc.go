// Package geo resolves the device location for attendance submissions.
//
// Locator.Current always hands back coordinates to submit. A denied
// permission, a missing provider, a provider error and a timeout all yield
// models.ZeroCoordinates, with the cause returned alongside for logging, so
// that marking attendance is never blocked on location.
package geo
