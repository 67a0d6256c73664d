package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	err := NewUnauthorized("Token ausente")
	domainErr := ToDomainError(err)
	require.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	require.Equal(t, "Token ausente", domainErr.Message)
}

func TestToDomainError_MapsNoRowsToNotFound(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainError_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	domainErr := ToDomainError(cause)
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	require.ErrorIs(t, domainErr, cause)
}

func TestToDomainError_Nil(t *testing.T) {
	require.Nil(t, ToDomainError(nil))
}
