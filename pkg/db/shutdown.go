package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shutdown adapts pool.Close to a server shutdown hook.
func Shutdown(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}
