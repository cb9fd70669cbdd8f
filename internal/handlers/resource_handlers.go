package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/pricing"
	"github.com/sjperalta/fintera-homes/internal/services"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

type CreatePropertyRequest struct {
	Name      string          `json:"name" binding:"required"`
	Block     string          `json:"block" binding:"required"`
	LotNumber string          `json:"lot_number" binding:"required"`
	Address   *string         `json:"address"`
	Price     decimal.Decimal `json:"price"`
}

// @Summary List Properties
// @Description Get a paginated list of properties
// @Tags Properties
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Name, block or lot"
// @Param status query string false "available, reserved or sold"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /properties [get]
func (h *PropertyHandler) Index(c *gin.Context) {
	query := listQuery(c, "status")

	properties, total, err := h.propertyService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, properties[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"properties": responses, "pagination": pagination(query, total)})
}

// @Summary Get Property
// @Description Get a property by ID
// @Tags Properties
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} models.PropertyResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [get]
func (h *PropertyHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "property_id")
	if !ok {
		return
	}

	property, err := h.propertyService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property.ToResponse()})
}

// @Summary Create Property
// @Description Add a property to the catalogue
// @Tags Properties
// @Accept json
// @Produce json
// @Param request body CreatePropertyRequest true "Property Data"
// @Success 201 {object} models.PropertyResponse
// @Security BearerAuth
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := BindNestedOrFlat(c, "property", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), services.PropertyInput{
		Name:      req.Name,
		Block:     req.Block,
		LotNumber: req.LotNumber,
		Address:   req.Address,
		Price:     req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property.ToResponse()})
}

type PricingHandler struct {
	propertyService *services.PropertyService
}

func NewPricingHandler(propertyService *services.PropertyService) *PricingHandler {
	return &PricingHandler{propertyService: propertyService}
}

// decimalQuery parses a decimal query parameter, using def when it is absent
func decimalQuery(c *gin.Context, key string, def decimal.Decimal) (decimal.Decimal, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valor numérico inválido: " + key})
		return decimal.Zero, false
	}
	return value, true
}

// @Summary Contract Quote
// @Description Preview the downpayment split and installments for a property, fee and plan length
// @Tags Pricing
// @Produce json
// @Param property_id query int true "Property ID"
// @Param reservation_fee query number false "Reservation fee" default(0)
// @Param months query int true "Plan length (1-12)"
// @Success 200 {object} services.Quote
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /pricing/quote [get]
func (h *PricingHandler) Quote(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Query("property_id"), 10, 32)
	if err != nil || propertyID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id es requerido"})
		return
	}
	months, err := strconv.Atoi(c.Query("months"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months es requerido"})
		return
	}
	fee, ok := decimalQuery(c, "reservation_fee", decimal.Zero)
	if !ok {
		return
	}

	quote, err := h.propertyService.Quote(c.Request.Context(), uint(propertyID), fee, months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// @Summary Monthly Interest
// @Description Compute one month of interest on the financed balance with the seasonal multiplier
// @Tags Pricing
// @Produce json
// @Param total_price query number true "Total price"
// @Param down_payment query number false "Down payment" default(0)
// @Param rate query number true "Annual rate as a fraction (0.12)"
// @Param month query int false "Calendar month 1-12, current month when omitted"
// @Success 200 {object} pricing.InterestResult
// @Security BearerAuth
// @Router /pricing/interest [get]
func (h *PricingHandler) Interest(c *gin.Context) {
	total, ok := decimalQuery(c, "total_price", decimal.Zero)
	if !ok {
		return
	}
	downPayment, ok := decimalQuery(c, "down_payment", decimal.Zero)
	if !ok {
		return
	}
	rate, ok := decimalQuery(c, "rate", decimal.Zero)
	if !ok {
		return
	}

	month := int(time.Now().Month())
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month debe estar entre 1 y 12"})
			return
		}
		month = m
	}

	c.JSON(http.StatusOK, pricing.ComputeMonthlyInterest(total, downPayment, rate, month))
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of audit entries, optionally for one entity
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param entity query string false "Reservation, Contract or PaymentSchedule"
// @Param entity_id query int false "Entity ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}
	entityID, _ := strconv.ParseUint(c.Query("entity_id"), 10, 32)
	offset := (page - 1) * perPage

	logs, total, err := h.auditService.List(c.Request.Context(), c.Query("entity"), uint(entityID), perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": gin.H{"total": total, "page": page, "per_page": perPage}})
}
