package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
)

// mapError traduce errores de gorm/SQLite a la taxonomía de dominio.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "PRIMARY KEY constraint failed"):
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, op)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidInput, op, msg)
	case errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "database is closed"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "disk I/O error"):
		return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
