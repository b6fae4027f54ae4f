package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	followupsapp "github.com/Apurer/sales-backoffice/internal/domains/followups/application"
	followupsports "github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
	salesapp "github.com/Apurer/sales-backoffice/internal/domains/sales/application"
	salesports "github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
	apierrors "github.com/Apurer/sales-backoffice/internal/shared/errors"
)

// responder maps application sentinels onto RFC 7807 problems; anything else is a 500.
var responder = apierrors.NewChainedResponder("",
	apierrors.MatchErrors(apierrors.ErrNotFound, salesports.ErrNotFound, followupsports.ErrNotFound),
	apierrors.MatchErrors(apierrors.ErrValidation, salesapp.ErrInvalidInput, followupsapp.ErrInvalidInput),
	apierrors.MatchErrors(apierrors.ErrDuplicateSale, salesports.ErrAlreadyExists),
	apierrors.MatchErrors(apierrors.ErrFollowUpOpen, followupsports.ErrAlreadyExists),
	apierrors.MatchErrors(apierrors.ErrFollowUpResolved, followupsapp.ErrConflict),
)

// respondServiceError translates service failures.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondError answers with a problem for a known status, used for transport-level failures.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	responder.Respond(c, problem)
}

// respondInvalidParam reports a malformed query or path parameter.
func respondInvalidParam(c *gin.Context, name string, err error) {
	responder.Respond(c, apierrors.NewValidationProblem(map[string]string{name: err.Error()}))
}
