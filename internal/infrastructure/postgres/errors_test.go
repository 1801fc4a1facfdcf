package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "products_name_key"}, domain.ErrDuplicate},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "products_current_quantity_check"}, domain.ErrInvalidInput},
		{"fk", &pgconn.PgError{Code: "23503"}, domain.ErrInvalidInput},
		{"utf8 inválido", &pgconn.PgError{Code: "22021"}, domain.ErrInvalidInput},
		{"valor largo", &pgconn.PgError{Code: "22001"}, domain.ErrInvalidInput},
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, domain.ErrUnavailable},
		{"conexión", &pgconn.PgError{Code: "08006"}, domain.ErrUnavailable},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), domain.ErrUnavailable},
		{"pool cerrado", errors.New("closed pool"), domain.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(tc.err, "op")
			assert.ErrorIs(t, got, tc.want)
		})
	}

	assert.NoError(t, mapError(nil, "op"))
	other := errors.New("sintaxis")
	got := mapError(other, "op")
	assert.ErrorIs(t, got, other)
	assert.Nil(t, domain.Kind(got))
}
