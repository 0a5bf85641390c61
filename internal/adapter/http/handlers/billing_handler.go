package handlers

import (
	"errors"
	"net/http"

	request "oficina_pro/internal/adapter/http/dto/request"
	response "oficina_pro/internal/adapter/http/dto/response"
	"oficina_pro/internal/usecase"
	"oficina_pro/pkg"

	"github.com/gin-gonic/gin"
)

// BillingHandler handles HTTP requests for collections: the arrears summary
// and escalation notices.

type BillingHandler struct {
	usecase usecase.IBillingUseCase
}

func NewBillingHandler(uc usecase.IBillingUseCase) *BillingHandler {
	return &BillingHandler{usecase: uc}
}

func (h *BillingHandler) Summary(c *gin.Context) {
	summary, err := h.usecase.Summary(c.Request.Context(), tenantFrom(c))
	if err != nil {
		appErr := mapBillingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *BillingHandler) SendCollectionNotice(c *gin.Context) {
	var payload request.CollectionNoticeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.SendCollectionNotice(c.Request.Context(), tenantFrom(c), c.Param("id"), payload.Operator, usecase.CollectionTier(payload.Tier))
	if err != nil {
		appErr := mapBillingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(order))
}

func mapBillingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidTier):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotCollectable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_COLLECTABLE", "Order payment is already settled", http.StatusConflict)
	case errors.Is(err, usecase.ErrClientPhoneMissing):
		return pkg.NewDomainErrorSimple("CLIENT_PHONE_MISSING", "Client has no phone number for notices", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
