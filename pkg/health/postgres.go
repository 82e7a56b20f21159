package health

import "context"

type pinger interface {
	Ping(ctx context.Context) error
}

// NewPostgresChecker checks connectivity of a pgx pool.
func NewPostgresChecker(pool pinger) Checker {
	return NewCheckFunc("postgres", pool.Ping)
}
