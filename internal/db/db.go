package db

import "context"

// DB is the database port handed to repositories. Conn exposes the
// driver-specific handle so each repository package can assert the type it
// was written for.
type DB interface {
	Conn() any
	Ping(ctx context.Context) error
	Close() error
}
