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

// ClientHandler handles HTTP requests for clients and their vehicles.

type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), tenantFrom(c), payload.ToInput())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(client))
}

func (h *ClientHandler) Update(c *gin.Context) {
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), tenantFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	client, err := h.usecase.GetByID(c.Request.Context(), tenantFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context(), tenantFrom(c))
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClients(clients))
}

// Delete cascades: the client's vehicles and service orders go with it.
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.usecase.DeleteCascade(c.Request.Context(), tenantFrom(c), c.Param("id")); err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) AddVehicle(c *gin.Context) {
	var payload request.VehicleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	vehicle, err := h.usecase.AddVehicle(c.Request.Context(), tenantFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromVehicle(vehicle))
}

func (h *ClientHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.usecase.ListVehicles(c.Request.Context(), tenantFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromVehicles(vehicles))
}

func (h *ClientHandler) UpdateVehicle(c *gin.Context) {
	var payload request.VehicleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	vehicle, err := h.usecase.UpdateVehicle(c.Request.Context(), tenantFrom(c), c.Param("vehicle_id"), payload.ToInput())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromVehicle(vehicle))
}

func (h *ClientHandler) DeleteVehicle(c *gin.Context) {
	if err := h.usecase.DeleteVehicle(c.Request.Context(), tenantFrom(c), c.Param("vehicle_id")); err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientName), errors.Is(err, usecase.ErrInvalidClientID), errors.Is(err, usecase.ErrInvalidVehicleID), errors.Is(err, usecase.ErrInvalidPlate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("VEHICLE_NOT_FOUND", "Vehicle not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPlateAlreadyInUse):
		return pkg.NewDomainErrorSimple("PLATE_ALREADY_IN_USE", "Plate already registered to another vehicle", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
