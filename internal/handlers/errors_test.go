package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/fintera-homes/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: contrato 9", services.ErrNotFound), http.StatusNotFound},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrConcurrentModification, http.StatusConflict},
		{services.ErrUniqueConstraintViolation, http.StatusConflict},
		{services.ErrDuplicate, http.StatusConflict},
		{fmt.Errorf("%w: 0 meses", services.ErrInvalidPlan), http.StatusUnprocessableEntity},
		{services.ErrReservationNotApproved, http.StatusUnprocessableEntity},
		{&services.PlanChangeRejectedError{}, http.StatusUnprocessableEntity},
		{services.ErrInvalidReservation, http.StatusUnprocessableEntity},
		{services.ErrInvalidProperty, http.StatusUnprocessableEntity},
		{services.ErrPropertyUnavailable, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrInvalidToken, http.StatusUnauthorized},
		{services.ErrInactiveAccount, http.StatusForbidden},
		{&services.PersistenceError{Op: "create contract", Err: errors.New("connection reset")}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}

func TestRespondErrorHidesStorageDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, &services.PersistenceError{Op: "find contract", Err: errors.New("dial tcp 10.0.0.5:5432")})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestRespondErrorIncludesPlanReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, &services.PlanChangeRejectedError{Report: &services.PlanChangeReport{
		ValidationErrors: []string{"el nuevo plan es igual al actual"},
		NewMonths:        6,
	}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"report"`)
	assert.Contains(t, w.Body.String(), "el nuevo plan es igual al actual")
}
