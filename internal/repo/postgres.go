package repo

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	defaultQueryTimeout = 3 * time.Second
	uniqueViolation     = "23505"
)

// translatePgError maps driver errors onto the repository sentinels.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicatedValueUnique
	}
	return err
}
