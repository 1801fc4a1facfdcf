package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/domain"
)

func TestValidate(t *testing.T) {
	require.NoError(t, dto.Validate(dto.ProductRequest{Name: "Widget"}))

	err := dto.Validate(dto.ProductRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "el nombre del producto es obligatorio")

	err = dto.Validate(dto.RegisterUserRequest{Username: "ana", Password: "x", Role: "root"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "el rol debe ser uno de: admin regular")

	require.NoError(t, dto.Validate(dto.RegisterUserRequest{Username: "ana", Password: "x"}))
}
