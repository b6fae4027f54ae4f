package backofficeserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	triagemapper "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/http/mapper"
	backofficeports "github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
)

// TriageAPI exposes the classifier views and sweeps.
type TriageAPI struct {
	service backofficeports.Service
	sweeps  backofficeports.SweepOrchestrator
}

// NewTriageAPI falls back to running sweeps through the service when sweeps is nil.
func NewTriageAPI(service backofficeports.Service, sweeps backofficeports.SweepOrchestrator) TriageAPI {
	return TriageAPI{service: service, sweeps: sweeps}
}

// Get /v1/sales/:saleId/triage
// Classify one sale
func (api *TriageAPI) ClassifySale(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}
	classified, err := api.service.ClassifySale(c.Request.Context(), c.Param("saleId"), asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, triagemapper.FromClassifiedSale(*classified))
}

// Get /v1/triage/queue
// Filtered, ordered work list
func (api *TriageAPI) Queue(c *gin.Context) {
	query, ok := parseQueueQuery(c)
	if !ok {
		return
	}
	queue, err := api.service.Queue(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, triagemapper.FromQueue(queue))
}

// Get /v1/triage/summary
// Metrics and bucket counts over the filtered snapshot
func (api *TriageAPI) Summary(c *gin.Context) {
	query, ok := parseQueueQuery(c)
	if !ok {
		return
	}
	summary, err := api.service.Summary(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, triagemapper.FromSummary(summary))
}

// Post /v1/triage/sweeps
// Run a sweep that opens follow-ups for HIGH sales
func (api *TriageAPI) RunSweep(c *gin.Context) {
	var payload triagemapper.SweepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	var asOf time.Time
	if payload.AsOf != nil {
		asOf = payload.AsOf.UTC()
	}
	var (
		result *backofficeports.SweepResult
		err    error
	)
	if api.sweeps != nil {
		result, err = api.sweeps.RunSweep(c.Request.Context(), asOf)
	} else {
		result, err = api.service.Sweep(c.Request.Context(), asOf)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, triagemapper.FromSweep(result))
}

// Get /v1/triage/sweeps
// Recent sweeps, newest first
func (api *TriageAPI) ListSweeps(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	list, err := api.service.RecentSweeps(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, triagemapper.FromSweeps(list))
}

func parseQueueQuery(c *gin.Context) (backofficeports.QueueQuery, bool) {
	filter, ok := parseTriageFilter(c)
	if !ok {
		return backofficeports.QueueQuery{}, false
	}
	asOf, ok := parseAsOf(c)
	if !ok {
		return backofficeports.QueueQuery{}, false
	}
	return backofficeports.QueueQuery{Filter: filter, AsOf: asOf}, true
}
