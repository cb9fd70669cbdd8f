package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/fintera-homes/internal/middleware"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/services"
)

type ContractHandler struct {
	contractService *services.ContractService
	exportService   *services.ExportService
}

func NewContractHandler(contractService *services.ContractService, exportService *services.ExportService) *ContractHandler {
	return &ContractHandler{contractService: contractService, exportService: exportService}
}

// contractResponse renders a contract with the schedule carried by result
func contractResponse(result *services.ContractResult) models.ContractResponse {
	contract := *result.Contract
	contract.PaymentSchedules = result.Schedules
	return contract.ToResponse()
}

type PlanRequest struct {
	NewMonths int     `json:"new_months"`
	Reason    *string `json:"reason"`
	// ExpectedVersion is the version returned by plan/validate
	ExpectedVersion *int `json:"expected_version"`
}

// @Summary List Contracts
// @Description Get a paginated list of contracts
// @Tags Contracts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Contract number or client name"
// @Param status query string false "Filter by status"
// @Param property_id query int false "Property ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	query := listQuery(c, "status", "property_id")

	contracts, total, err := h.contractService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, contracts[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"contracts": responses, "pagination": pagination(query, total)})
}

// @Summary Get Contract
// @Description Get a contract with its payment schedule
// @Tags Contracts
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} models.ContractResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{contract_id} [get]
func (h *ContractHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "contract_id")
	if !ok {
		return
	}

	contract, err := h.contractService.FindByIDWithSchedules(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// @Summary Validate Plan Change
// @Description Report whether the plan can change to new_months and its impact, without changing anything
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Param request body PlanRequest true "Proposed plan"
// @Success 200 {object} services.PlanChangeReport
// @Security BearerAuth
// @Router /contracts/{contract_id}/plan/validate [post]
func (h *ContractHandler) ValidatePlan(c *gin.Context) {
	id, ok := paramID(c, "contract_id")
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de solicitud inválido"})
		return
	}

	report, err := h.contractService.ValidatePlanChange(c.Request.Context(), id, req.NewMonths)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Change Plan
// @Description Replace the unpaid installments with a plan of new_months, keeping paid ones
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Param request body PlanRequest true "New plan"
// @Success 200 {object} models.ContractResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /contracts/{contract_id}/plan [post]
func (h *ContractHandler) ChangePlan(c *gin.Context) {
	id, ok := paramID(c, "contract_id")
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de solicitud inválido"})
		return
	}
	if req.ExpectedVersion == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected_version es obligatorio; valide el plan primero"})
		return
	}

	result, err := h.contractService.ChangePlan(c.Request.Context(), services.PlanChangeRequest{
		ContractID:      id,
		NewMonths:       req.NewMonths,
		Reason:          req.Reason,
		ExpectedVersion: *req.ExpectedVersion,
		ActorID:         middleware.GetUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contractResponse(result)})
}

// @Summary Plan Revisions
// @Description List the plan changes applied to a contract, newest first
// @Tags Contracts
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {array} models.PlanRevision
// @Security BearerAuth
// @Router /contracts/{contract_id}/revisions [get]
func (h *ContractHandler) Revisions(c *gin.Context) {
	id, ok := paramID(c, "contract_id")
	if !ok {
		return
	}

	revisions, err := h.contractService.Revisions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revisions": revisions})
}

// @Summary Pay Installment
// @Description Record the collection of one installment
// @Tags Contracts
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Param schedule_id path int true "Payment schedule ID"
// @Success 200 {object} models.ContractResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{contract_id}/payment_schedules/{schedule_id}/pay [post]
func (h *ContractHandler) PayInstallment(c *gin.Context) {
	contractID, ok := paramID(c, "contract_id")
	if !ok {
		return
	}
	scheduleID, ok := paramID(c, "schedule_id")
	if !ok {
		return
	}

	result, err := h.contractService.MarkInstallmentPaid(c.Request.Context(), contractID, scheduleID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contractResponse(result)})
}

// @Summary Export Payment Schedule
// @Description Download the contract's payment schedule as CSV, XLSX or PDF
// @Tags Contracts
// @Produce text/csv
// @Produce application/pdf
// @Param contract_id path int true "Contract ID"
// @Param format query string false "csv, xlsx or pdf" default(pdf)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /contracts/{contract_id}/export [get]
func (h *ContractHandler) Export(c *gin.Context) {
	id, ok := paramID(c, "contract_id")
	if !ok {
		return
	}

	format := services.Format(strings.ToLower(c.DefaultQuery("format", string(services.FormatPDF))))
	switch format {
	case services.FormatCSV, services.FormatXLSX, services.FormatPDF:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato no soportado: use csv, xlsx o pdf"})
		return
	}

	data, filename, err := h.exportService.ExportSchedule(c.Request.Context(), id, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), data)
}
