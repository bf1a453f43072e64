// Package kv implements the device-local key/value repository on top of
// the SQLite table created by the client migrations:
//
//	CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)
//
// The repository accepts any dbx.DBTX, so it can run against *sql.DB or
// inside a transaction started with dbx.WithTx.
package kv
