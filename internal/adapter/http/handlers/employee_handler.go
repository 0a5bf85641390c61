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

// EmployeeHandler handles HTTP requests for staff records. All routes are
// owner-gated by the role middleware.

type EmployeeHandler struct {
	usecase usecase.IEmployeeUseCase
}

func NewEmployeeHandler(uc usecase.IEmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{usecase: uc}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var payload request.EmployeeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	employee, err := h.usecase.Create(c.Request.Context(), tenantFrom(c), payload.ToInput())
	if err != nil {
		appErr := mapEmployeeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEmployee(employee))
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var payload request.EmployeeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	employee, err := h.usecase.Update(c.Request.Context(), tenantFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapEmployeeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEmployee(employee))
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.usecase.List(c.Request.Context(), tenantFrom(c))
	if err != nil {
		appErr := mapEmployeeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEmployees(employees))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), tenantFrom(c), c.Param("id")); err != nil {
		appErr := mapEmployeeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapEmployeeError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEmployeeID), errors.Is(err, usecase.ErrInvalidEmployeeName):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return pkg.NewDomainErrorSimple("EMPLOYEE_NOT_FOUND", "Employee not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
