package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{name: "domain error passes through", err: NewForbidden("nope"), code: CodeForbidden, status: http.StatusForbidden},
		{name: "wrapped domain error", err: fmt.Errorf("wrap: %w", NewUnauthorized("login")), code: CodeUnauthorized, status: http.StatusUnauthorized},
		{name: "no rows", err: fmt.Errorf("lookup: %w", pgx.ErrNoRows), code: CodeNotFound, status: http.StatusNotFound},
		{name: "fiber not found", err: fiber.ErrNotFound, code: CodeNotFound, status: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), code: CodeInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.HTTPStatus)
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
