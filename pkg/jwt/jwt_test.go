package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Inventario-estoque/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "estoque-test"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ana", "admin", testIssuer, 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ana", "regular", testIssuer, 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", testIssuer, tok)
	assert.Error(t, err, "firma con otro secreto")

	_, err = pkgjwt.Parse(testSecret, "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := pkgjwt.Generate(testSecret, "u-1", "ana", "regular", testIssuer, -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, testIssuer, expired)
	assert.Error(t, err, "token expirado")

	_, err = pkgjwt.Generate("", "u-1", "ana", "regular", testIssuer, 5)
	assert.Error(t, err)
}
