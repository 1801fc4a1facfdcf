package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
)

// mapError traduce errores de pgx a la taxonomía de dominio conservando el original en la cadena.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%w: %s (%s)", domain.ErrDuplicate, op, pgErr.ConstraintName)
		case pgErr.Code == "23514", pgErr.Code == "23503", pgErr.Code == "23502", pgErr.Code == "22P02",
			pgErr.Code == "22021", pgErr.Code == "22001": // bytes UTF-8 inválidos, valor demasiado largo
			return fmt.Errorf("%w: %s: restricción %s", domain.ErrInvalidInput, op, pgErr.ConstraintName)
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s: %w", domain.ErrConflict, op, err)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isConnectionError detecta pérdida de conexión, timeouts y pool cerrado.
func isConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr), errors.As(err, &netErr):
		return true
	case pgconn.Timeout(err), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, net.ErrClosed), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return strings.Contains(err.Error(), "closed pool")
}
