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

// PartHandler handles HTTP requests for inventory.

type PartHandler struct {
	usecase usecase.IPartUseCase
}

func NewPartHandler(uc usecase.IPartUseCase) *PartHandler {
	return &PartHandler{usecase: uc}
}

func (h *PartHandler) Create(c *gin.Context) {
	var payload request.PartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	part, err := h.usecase.Create(c.Request.Context(), tenantFrom(c), payload.ToInput())
	if err != nil {
		appErr := mapPartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromPart(part))
}

func (h *PartHandler) Update(c *gin.Context) {
	var payload request.PartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	part, err := h.usecase.Update(c.Request.Context(), tenantFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapPartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPart(part))
}

func (h *PartHandler) AdjustStock(c *gin.Context) {
	var payload request.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	part, err := h.usecase.AdjustStock(c.Request.Context(), tenantFrom(c), c.Param("id"), payload.Delta)
	if err != nil {
		appErr := mapPartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPart(part))
}

// List returns the tenant's inventory; ?low_stock=true narrows to parts at or
// below their reorder threshold.
func (h *PartHandler) List(c *gin.Context) {
	var (
		parts []response.PartResponse
		err   error
	)
	if c.Query("low_stock") == "true" {
		low, e := h.usecase.ListLowStock(c.Request.Context(), tenantFrom(c))
		parts, err = response.FromParts(low), e
	} else {
		all, e := h.usecase.List(c.Request.Context(), tenantFrom(c))
		parts, err = response.FromParts(all), e
	}
	if err != nil {
		appErr := mapPartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) GetByID(c *gin.Context) {
	part, err := h.usecase.GetByID(c.Request.Context(), tenantFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapPartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPart(part))
}

func (h *PartHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), tenantFrom(c), c.Param("id")); err != nil {
		appErr := mapPartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapPartError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPartID), errors.Is(err, usecase.ErrInvalidPartName), errors.Is(err, usecase.ErrInvalidPartStock):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPartNotFound):
		return pkg.NewDomainErrorSimple("PART_NOT_FOUND", "Part not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrStockUnderflow):
		return pkg.NewDomainErrorSimple("STOCK_UNDERFLOW", "Stock adjustment would go negative", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
