package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sjperalta/fintera-homes/internal/pricing"
	"github.com/sjperalta/fintera-homes/internal/statemachine"
)

// Common service errors
var (
	ErrNotFound                  = errors.New("registro no encontrado")
	ErrInvalidPlan               = pricing.ErrInvalidPlan
	ErrInvalidTransition         = statemachine.ErrInvalidTransition
	ErrReservationNotApproved    = errors.New("la reserva no está aprobada")
	ErrPlanChangeRejected        = errors.New("cambio de plan rechazado")
	ErrConcurrentModification    = errors.New("el contrato fue modificado por otra operación")
	ErrUniqueConstraintViolation = errors.New("violación de restricción única")
	ErrPersistence               = errors.New("error de persistencia")
	ErrInvalidReservation        = errors.New("reserva inválida")
	ErrInvalidProperty           = errors.New("propiedad inválida")
	ErrPropertyUnavailable       = errors.New("la propiedad ya está comprometida con otra reserva")
	ErrDuplicate                 = errors.New("registro duplicado")
	ErrInvalidCredentials        = errors.New("credenciales inválidas")
	ErrInactiveAccount           = errors.New("cuenta inactiva")
	ErrInvalidToken              = errors.New("token inválido o expirado")
)

// domainErrors pass through the persistence layer untouched
var domainErrors = []error{
	ErrNotFound,
	ErrInvalidPlan,
	ErrInvalidTransition,
	ErrReservationNotApproved,
	ErrPlanChangeRejected,
	ErrConcurrentModification,
	ErrUniqueConstraintViolation,
	ErrInvalidReservation,
	ErrInvalidProperty,
	ErrPropertyUnavailable,
	ErrDuplicate,
	ErrInvalidCredentials,
	ErrInactiveAccount,
	ErrInvalidToken,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// PlanChangeRejectedError carries the validation report of a refused plan change.
// It matches ErrPlanChangeRejected with errors.Is.
type PlanChangeRejectedError struct {
	Report *PlanChangeReport
}

func (e *PlanChangeRejectedError) Error() string {
	if e.Report == nil || len(e.Report.ValidationErrors) == 0 {
		return ErrPlanChangeRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrPlanChangeRejected, strings.Join(e.Report.ValidationErrors, "; "))
}

// Is reports whether target is ErrPlanChangeRejected
func (e *PlanChangeRejectedError) Is(target error) bool {
	return target == ErrPlanChangeRejected
}

// PersistenceError reports a storage failure that survived the retry policy
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

// Unwrap exposes both ErrPersistence and the underlying driver error
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
