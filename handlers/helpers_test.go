package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futdraft/futdraft-backend/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{services.ErrMatchNotFound, http.StatusNotFound},
		{services.ErrPlayerNotFound, http.StatusNotFound},
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrNotFound, http.StatusNotFound},

		{services.ErrMatchFull, http.StatusConflict},
		{services.ErrAlreadyEnrolled, http.StatusConflict},
		{services.ErrMustUnconfirmFirst, http.StatusConflict},
		{services.ErrAuthEmailTaken, http.StatusConflict},

		{services.ErrValidationFailed, http.StatusBadRequest},
		{services.ErrInvalidCapacity, http.StatusBadRequest},
		{services.ErrInvalidDraftMode, http.StatusBadRequest},
		{services.ErrInsufficientPlayers, http.StatusBadRequest},
		{services.ErrNotEnrolled, http.StatusBadRequest},
		{services.ErrNotConfirmed, http.StatusBadRequest},
		{services.ErrPasswordTooShort, http.StatusBadRequest},

		{services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/matches/1", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}
		})
	}
}

func TestMapServiceErrorToHTTPWrappedErrors(t *testing.T) {
	// Обёртки через %w не должны ломать маппинг.
	wrapped := fmt.Errorf("draft failed for match 7: %w", services.ErrInsufficientPlayers)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/matches/7/draft", nil)
	mapServiceErrorToHTTP(rec, req, wrapped)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
