package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	SalesAPI    SalesAPI
	TriageAPI   TriageAPI
	FollowUpAPI FollowUpAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine. Middleware must be installed on
// router before calling, since gin binds the handler chain at registration.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"CreateSale", http.MethodPost, "/v1/sales", handleFunctions.SalesAPI.CreateSale},
		{"ListSales", http.MethodGet, "/v1/sales", handleFunctions.SalesAPI.ListSales},
		{"GetSale", http.MethodGet, "/v1/sales/:saleId", handleFunctions.SalesAPI.GetSale},
		{"UpdateStatuses", http.MethodPatch, "/v1/sales/:saleId/status", handleFunctions.SalesAPI.UpdateStatuses},
		{"DeleteSale", http.MethodDelete, "/v1/sales/:saleId", handleFunctions.SalesAPI.DeleteSale},
		{"ClassifySale", http.MethodGet, "/v1/sales/:saleId/triage", handleFunctions.TriageAPI.ClassifySale},
		{"TriageQueue", http.MethodGet, "/v1/triage/queue", handleFunctions.TriageAPI.Queue},
		{"TriageSummary", http.MethodGet, "/v1/triage/summary", handleFunctions.TriageAPI.Summary},
		{"RunSweep", http.MethodPost, "/v1/triage/sweeps", handleFunctions.TriageAPI.RunSweep},
		{"ListSweeps", http.MethodGet, "/v1/triage/sweeps", handleFunctions.TriageAPI.ListSweeps},
		{"OpenFollowUp", http.MethodPost, "/v1/sales/:saleId/follow-up", handleFunctions.FollowUpAPI.OpenFollowUp},
		{"GetFollowUp", http.MethodGet, "/v1/sales/:saleId/follow-up", handleFunctions.FollowUpAPI.GetFollowUp},
		{"AssignFollowUp", http.MethodPut, "/v1/sales/:saleId/follow-up/assignee", handleFunctions.FollowUpAPI.AssignFollowUp},
		{"AddFollowUpNote", http.MethodPost, "/v1/sales/:saleId/follow-up/notes", handleFunctions.FollowUpAPI.AddNote},
		{"ResolveFollowUp", http.MethodPost, "/v1/sales/:saleId/follow-up/resolve", handleFunctions.FollowUpAPI.ResolveFollowUp},
		{"ListFollowUps", http.MethodGet, "/v1/follow-ups", handleFunctions.FollowUpAPI.ListFollowUps},
	}
}
