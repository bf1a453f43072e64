// Package views holds the screen logic of the client, independent of how
// it is drawn: form validation, the home status, the camera workflow, the
// paginated history and the stats summary. The cli package renders them.
package views
