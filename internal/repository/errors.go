package repository

import (
	"errors"

	"restopos/internal/apierror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translate maps driver-level errors to the service error taxonomy so that
// callers never have to inspect gorm or pgx internals.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(entity)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apierror.Constraint(entity + " já existe com esse identificador")
	}
	return err
}
