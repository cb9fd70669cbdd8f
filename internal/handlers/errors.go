package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/fintera-homes/internal/services"
	"github.com/sjperalta/fintera-homes/pkg/logger"
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConcurrentModification),
		errors.Is(err, services.ErrUniqueConstraintViolation),
		errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrPropertyUnavailable):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidPlan),
		errors.Is(err, services.ErrReservationNotApproved),
		errors.Is(err, services.ErrPlanChangeRejected),
		errors.Is(err, services.ErrInvalidReservation),
		errors.Is(err, services.ErrInvalidProperty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInactiveAccount):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Storage and unexpected
// failures are reported to Sentry and answered with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status >= http.StatusInternalServerError {
		captureException(c, err)
		logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))

		message := "Error interno del servidor"
		if status == http.StatusServiceUnavailable {
			message = "El servicio de datos no está disponible, intente de nuevo"
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	body := gin.H{"error": err.Error()}
	var rejected *services.PlanChangeRejectedError
	if errors.As(err, &rejected) && rejected.Report != nil {
		body["report"] = rejected.Report
	}
	c.JSON(status, body)
}

func captureException(c *gin.Context, err error) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
