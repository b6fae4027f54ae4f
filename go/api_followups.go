package backofficeserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	followupsmapper "github.com/Apurer/sales-backoffice/internal/domains/followups/adapters/http/mapper"
	followupsdomain "github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	followupsports "github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
	salesports "github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

// FollowUpAPI exposes follow-up tasks keyed by sale.
type FollowUpAPI struct {
	service followupsports.Service
	sales   salesports.Service
}

// NewFollowUpAPI uses sales to reject follow-ups for unknown sales; sales may be nil.
func NewFollowUpAPI(service followupsports.Service, sales salesports.Service) FollowUpAPI {
	return FollowUpAPI{service: service, sales: sales}
}

// Post /v1/sales/:saleId/follow-up
// Open a follow-up, or return the one already open
func (api *FollowUpAPI) OpenFollowUp(c *gin.Context) {
	var payload followupsmapper.OpenFollowUp
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	saleID := c.Param("saleId")
	if api.sales != nil {
		if _, err := api.sales.GetSale(c.Request.Context(), saleID); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	task, opened, err := api.service.Open(c.Request.Context(), saleID, payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	status := http.StatusOK
	if opened {
		status = http.StatusCreated
	}
	c.JSON(status, followupsmapper.FromDomainTask(task))
}

// Get /v1/sales/:saleId/follow-up
// Current follow-up of a sale
func (api *FollowUpAPI) GetFollowUp(c *gin.Context) {
	task, err := api.service.GetBySale(c.Request.Context(), c.Param("saleId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, followupsmapper.FromDomainTask(task))
}

// Put /v1/sales/:saleId/follow-up/assignee
// Assign the follow-up
func (api *FollowUpAPI) AssignFollowUp(c *gin.Context) {
	var payload followupsmapper.AssignFollowUp
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	task, err := api.service.Assign(c.Request.Context(), c.Param("saleId"), payload.Assignee)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, followupsmapper.FromDomainTask(task))
}

// Post /v1/sales/:saleId/follow-up/notes
// Append a note
func (api *FollowUpAPI) AddNote(c *gin.Context) {
	var payload followupsmapper.AddNote
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	task, err := api.service.AddNote(c.Request.Context(), c.Param("saleId"), payload.Author, payload.Body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, followupsmapper.FromDomainTask(task))
}

// Post /v1/sales/:saleId/follow-up/resolve
// Resolve the follow-up
func (api *FollowUpAPI) ResolveFollowUp(c *gin.Context) {
	task, err := api.service.Resolve(c.Request.Context(), c.Param("saleId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, followupsmapper.FromDomainTask(task))
}

// Get /v1/follow-ups
// List follow-ups by assignee and status
func (api *FollowUpAPI) ListFollowUps(c *gin.Context) {
	filter := followupsports.ListFilter{Assignee: strings.TrimSpace(c.Query("assignee"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := followupsdomain.ParseStatus(raw)
		if err != nil {
			respondInvalidParam(c, "status", err)
			return
		}
		filter.Status = status
	}
	list, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, followupsmapper.FromDomainTasks(list))
}
