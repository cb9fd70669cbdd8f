package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/middleware"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/services"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
	contractService    *services.ContractService
}

func NewReservationHandler(reservationService *services.ReservationService, contractService *services.ContractService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService, contractService: contractService}
}

type CreateReservationRequest struct {
	ClientName       string          `json:"client_name" binding:"required"`
	ClientEmail      string          `json:"client_email" binding:"required,email"`
	ClientPhone      string          `json:"client_phone"`
	ClientAddress    *string         `json:"client_address"`
	EmployerName     *string         `json:"employer_name"`
	Occupation       *string         `json:"occupation"`
	EmploymentStatus string          `json:"employment_status"`
	YearsEmployed    int             `json:"years_employed"`
	MonthlyIncome    decimal.Decimal `json:"monthly_income"`
	OtherIncome      decimal.Decimal `json:"other_income"`
	PropertyID       uint            `json:"property_id" binding:"required"`
	ReservationFee   decimal.Decimal `json:"reservation_fee"`
	Source           string          `json:"source"`
}

type RejectReservationRequest struct {
	Reason *string `json:"reason"`
}

// @Summary List Reservations
// @Description Get a paginated list of reservations
// @Tags Reservations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Client name, email or phone"
// @Param status query string false "pending, approved or rejected"
// @Param property_id query int false "Property ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reservations [get]
func (h *ReservationHandler) Index(c *gin.Context) {
	query := listQuery(c, "status", "property_id")

	reservations, total, err := h.reservationService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, reservations[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"reservations": responses, "pagination": pagination(query, total)})
}

// @Summary Reservation Stats
// @Description Count reservations by status
// @Tags Reservations
// @Produce json
// @Success 200 {object} repository.ReservationStats
// @Security BearerAuth
// @Router /reservations/stats [get]
func (h *ReservationHandler) Stats(c *gin.Context) {
	stats, err := h.reservationService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get Reservation
// @Description Get a reservation by ID
// @Tags Reservations
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} models.ReservationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservation_id} [get]
func (h *ReservationHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation.ToResponse()})
}

// @Summary Create Reservation
// @Description Register a client's reservation of a property. Accepts {"reservation": {...}} or a flat body.
// @Tags Reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "Reservation Data"
// @Success 201 {object} models.ReservationResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := BindNestedOrFlat(c, "reservation", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), services.ReservationInput{
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		ClientAddress:    req.ClientAddress,
		EmployerName:     req.EmployerName,
		Occupation:       req.Occupation,
		EmploymentStatus: req.EmploymentStatus,
		YearsEmployed:    req.YearsEmployed,
		MonthlyIncome:    req.MonthlyIncome,
		OtherIncome:      req.OtherIncome,
		PropertyID:       req.PropertyID,
		ReservationFee:   req.ReservationFee,
		Source:           req.Source,
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": reservation.ToResponse()})
}

// @Summary Approve Reservation
// @Description Move a pending reservation to approved
// @Tags Reservations
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} models.ReservationResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservation_id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Approve(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation.ToResponse()})
}

// @Summary Reject Reservation
// @Description Move a pending reservation to rejected with an optional reason
// @Tags Reservations
// @Accept json
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Param request body RejectReservationRequest false "Rejection reason"
// @Success 200 {object} models.ReservationResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservation_id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}

	var req RejectReservationRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Reject(c.Request.Context(), id, middleware.GetUserID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation.ToResponse()})
}

// @Summary Revert Reservation
// @Description Move an approved or rejected reservation back to pending
// @Tags Reservations
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} models.ReservationResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservation_id}/revert [post]
func (h *ReservationHandler) Revert(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Revert(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation.ToResponse()})
}

type CreateContractRequest struct {
	PaymentPlanMonths int `json:"payment_plan_months"`
}

// @Summary Create Contract
// @Description Create the contract and payment schedule of an approved reservation. Returns the existing contract when there is one.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Param request body CreateContractRequest true "Plan length"
// @Success 201 {object} models.ContractResponse
// @Success 200 {object} models.ContractResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservation_id}/contract [post]
func (h *ReservationHandler) CreateContract(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}

	var req CreateContractRequest
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.contractService.CreateContract(c.Request.Context(), id, req.PaymentPlanMonths, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"contract": contractResponse(result), "created": result.Created})
}

// @Summary Get Contract By Reservation
// @Description Get the contract created from a reservation
// @Tags Contracts
// @Produce json
// @Param reservation_id path int true "Reservation ID"
// @Success 200 {object} models.ContractResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{reservation_id}/contract [get]
func (h *ReservationHandler) ShowContract(c *gin.Context) {
	id, ok := paramID(c, "reservation_id")
	if !ok {
		return
	}

	contract, err := h.contractService.GetContractByReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "La reserva no tiene contrato"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}
