package inventory

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

func TestParseMinQuantity(t *testing.T) {
	n, err := parseMinQuantity("")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = parseMinQuantity(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	for _, s := range []string{"-1", "1.0", "x"} {
		_, err := parseMinQuantity(s)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}

func TestParseMovementQuantity(t *testing.T) {
	n, err := parseMovementQuantity("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	for _, s := range []string{"", "0", "-2", "3.5", "siete", "99999999999999999999"} {
		_, err := parseMovementQuantity(s)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}

func TestApplyMovement(t *testing.T) {
	n, err := applyMovement(3, entity.MovementTypeIn, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = applyMovement(3, entity.MovementTypeOut, 3)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = applyMovement(3, entity.MovementTypeOut, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = applyMovement(math.MaxInt64, entity.MovementTypeIn, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = applyMovement(1, "transfer", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOutcomeOf(t *testing.T) {
	ok := OutcomeOf(nil, "producto creado")
	assert.Equal(t, Outcome{OK: true, Message: "producto creado"}, ok)

	o := OutcomeOf(errors.Join(domain.ErrUnavailable, errors.New("conexión rechazada")), "")
	assert.False(t, o.OK)
	assert.True(t, o.Fatal)

	o = OutcomeOf(domain.ErrInvalidCredentials, "")
	assert.Equal(t, "usuario o contraseña inválidos", o.Message)
	assert.False(t, o.Fatal)

	o = OutcomeOf(domain.ErrInsufficientStock, "")
	assert.False(t, o.OK)
	assert.Contains(t, o.Message, domain.ErrInsufficientStock.Error())

	o = OutcomeOf(errors.New("boom"), "")
	assert.Equal(t, "error inesperado: boom", o.Message)
}
