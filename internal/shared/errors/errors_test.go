package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("title is required"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("ticket not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("duplicate"), ErrorTypeConflict, http.StatusConflict},
		{"forbidden", NewForbiddenError("denied"), ErrorTypeForbidden, http.StatusForbidden},
		{"unavailable", NewUnavailableError("try again"), ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorIncludesDetails(t *testing.T) {
	err := NewNotFoundError("ticket not found", "id=7")
	assert.Equal(t, "not_found: ticket not found (id=7)", err.Error())
	assert.Equal(t, "validation_error: bad", NewValidationError("bad").Error())
}

func TestPredicates_UnwrapWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load ticket: %w", NewNotFoundError("ticket not found"))

	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.False(t, IsConflictError(stderrors.New("plain")))
	assert.Nil(t, GetAppError(stderrors.New("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"mysql", stderrors.New("Error 1062 (23000): Duplicate entry 'TKT-2026-0001' for key 'tickets.idx_tickets_ticket_number'"), true},
		{"postgres", stderrors.New(`ERROR: duplicate key value violates unique constraint "idx_tickets_ticket_number"`), true},
		{"sqlite", stderrors.New("UNIQUE constraint failed: tickets.ticket_number"), true},
		{"other", stderrors.New("database is locked"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
