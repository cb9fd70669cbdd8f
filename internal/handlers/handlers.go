package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	User        *UserHandler
	Property    *PropertyHandler
	Pricing     *PricingHandler
	Reservation *ReservationHandler
	Contract    *ContractHandler
	Audit       *AuditHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		User:        NewUserHandler(svcs.Auth),
		Property:    NewPropertyHandler(svcs.Property),
		Pricing:     NewPricingHandler(svcs.Property),
		Reservation: NewReservationHandler(svcs.Reservation, svcs.Contract),
		Contract:    NewContractHandler(svcs.Contract, svcs.Export),
		Audit:       NewAuditHandler(svcs.Audit),
		Job:         NewJobHandler(svcs.Job),
	}
}

// paramID reads a numeric path parameter, answering 400 when it is malformed
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido: " + name})
		return 0, false
	}
	return uint(id), true
}

// listQuery builds a ListQuery from the common paging, search and sort parameters
func listQuery(c *gin.Context, filters ...string) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 || query.PerPage > 100 {
		query.PerPage = 20
	}
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	for _, key := range filters {
		if value := c.Query(key); value != "" {
			query.Filters[key] = value
		}
	}
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}
