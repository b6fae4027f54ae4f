package backofficeserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	salesmapper "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/http/mapper"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	salesports "github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

// SalesAPI wires HTTP transport with the sales bounded context.
type SalesAPI struct {
	service salesports.Service
}

func NewSalesAPI(service salesports.Service) SalesAPI {
	return SalesAPI{service: service}
}

// Post /v1/sales
// Register a sale
func (api *SalesAPI) CreateSale(c *gin.Context) {
	var payload salesmapper.CreateSale
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateSale(c.Request.Context(), salesmapper.ToDraft(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, salesmapper.FromProjection(saved))
}

// Get /v1/sales
// List sales, optionally by product type and commercial status
func (api *SalesAPI) ListSales(c *gin.Context) {
	filter := salesports.ListFilter{ProductTypes: parseProductTypes(c)}
	for _, raw := range splitQuery(c, "commercialStatus") {
		filter.CommercialStatuses = append(filter.CommercialStatuses, domain.CommercialStatus(strings.ToUpper(raw)))
	}
	list, err := api.service.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, salesmapper.FromProjectionList(list))
}

// Get /v1/sales/:saleId
// Find sale by ID
func (api *SalesAPI) GetSale(c *gin.Context) {
	sale, err := api.service.GetSale(c.Request.Context(), c.Param("saleId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, salesmapper.FromProjection(sale))
}

// Patch /v1/sales/:saleId/status
// Update any subset of the status dimensions
func (api *SalesAPI) UpdateStatuses(c *gin.Context) {
	var payload salesmapper.StatusChange
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	change := salesmapper.ToStatusChange(payload)
	if change.Empty() {
		respondError(c, http.StatusBadRequest, errors.New("at least one status dimension is required"))
		return
	}
	updated, err := api.service.UpdateStatuses(c.Request.Context(), c.Param("saleId"), change)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, salesmapper.FromProjection(updated))
}

// Delete /v1/sales/:saleId
// Deletes a sale
func (api *SalesAPI) DeleteSale(c *gin.Context) {
	if err := api.service.DeleteSale(c.Request.Context(), c.Param("saleId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
