package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", pkgerr.ErrNotFound, http.StatusNotFound, "not_found"},
		{"invalid argument", pkgerr.ErrInvalidArgument, http.StatusBadRequest, "invalid_request"},
		{"conflict", pkgerr.ErrConflict, http.StatusConflict, "conflict"},
		{"unauthorized", pkgerr.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"unknown", fmt.Errorf("db on fire"), http.StatusInternalServerError, "internal_error"},
		{
			"wrapped sentinel",
			fmt.Errorf("student abc: %w", pkgerr.ErrNotFound),
			http.StatusNotFound,
			"not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondServiceError(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if env.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", env.Error.Code, tc.wantCode)
			}
			if env.Error.Message == "" {
				t.Fatalf("message should carry the error text")
			}
		})
	}
}

func TestRespondErrorNilError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondError(c, http.StatusInternalServerError, "internal_error", nil)

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Error.Message != "unknown error" {
		t.Fatalf("message = %q, want fallback text", env.Error.Message)
	}
}
