package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/farmconnect/internal/service"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in      string
		want    flexInt
		wantErr bool
	}{
		{in: `12`, want: 12},
		{in: `"12"`, want: 12},
		{in: `" 7"`, wantErr: true},
		{in: `""`, want: 0},
		{in: `null`, want: 0},
		{in: `"abc"`, wantErr: true},
		{in: `1.5`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var v struct {
				N flexInt `json:"n"`
			}
			err := json.Unmarshal([]byte(`{"n":`+tc.in+`}`), &v)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.N)
		})
	}
}

func TestValidationMessage_UsesJSONNames(t *testing.T) {
	req := RegisterRequest{Name: "Ann"}
	err := validate.Struct(&req)
	require.Error(t, err)

	msg := validationMessage(err)
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "password")
	assert.Contains(t, msg, "user_type")
	assert.NotContains(t, msg, "Name")
}

func TestWriteServiceError_StatusAndBody(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("op: %w", service.ErrValidation), http.StatusBadRequest, "Validation error"},
		{service.ErrDuplicateEmail, http.StatusConflict, "Email already registered"},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{fmt.Errorf("op: %w", service.ErrNotFound), http.StatusNotFound, "Not found"},
		{service.ErrConflict, http.StatusConflict, "Conflict"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, logger, tc.err)

			assert.Equal(t, tc.status, rr.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tc.body, resp.Error)
		})
	}
}
