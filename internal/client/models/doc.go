// Package models defines the attendance API payloads as seen by the client:
// users, attendance records, paginated record pages and aggregate stats.
// Records are immutable on the client; they are decoded and displayed,
// never edited.
package models
