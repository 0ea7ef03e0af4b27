package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eokonkwo/campuscore/internal/app/models/dto"
	"github.com/eokonkwo/campuscore/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, err)

	var body struct {
		Error dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body.Error
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"not lecturer of record", apperrors.ErrNotLecturerOfRecord, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"verified result immutable", apperrors.ErrResultVerified, http.StatusConflict, dto.ErrorCodeResultImmutable},
		{"student not registered", apperrors.ErrStudentNotRegistered, http.StatusUnprocessableEntity, dto.ErrorCodeNotRegistered},
		{"registration closed", apperrors.ErrRegistrationClosed, http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed},
		{"score out of range", apperrors.ErrScoreOutOfRange, http.StatusBadRequest, dto.ErrorCodeScoreOutOfRange},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"wrapped sentinel", fmt.Errorf("loading result: %w", apperrors.ErrResultNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown error", errors.New("pool exhausted"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, detail := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestHandleAPIErrorCustomErrorDetails(t *testing.T) {
	err := apperrors.NewIncompleteSubmissionError(3)

	w, detail := handleError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrorCodeIncompleteSubmission, detail.Code)
	require.NotNil(t, detail.Details)
	assert.EqualValues(t, 3, detail.Details.(map[string]interface{})["missingCount"])
}

func TestHandleAPIErrorDoesNotLeakInternalMessages(t *testing.T) {
	_, detail := handleError(t, errors.New("pq: connection refused on 10.0.0.3"))

	assert.Equal(t, "Internal server error", detail.Message)
	assert.NotContains(t, detail.Message, "10.0.0.3")
}
