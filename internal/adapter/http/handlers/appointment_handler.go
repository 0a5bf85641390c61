package handlers

import (
	"errors"
	"net/http"

	request "oficina_pro/internal/adapter/http/dto/request"
	response "oficina_pro/internal/adapter/http/dto/response"
	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase"
	"oficina_pro/pkg"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler handles HTTP requests for scheduling.

type AppointmentHandler struct {
	usecase usecase.IAppointmentUseCase
}

func NewAppointmentHandler(uc usecase.IAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{usecase: uc}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var payload request.AppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	appointment, err := h.usecase.Schedule(c.Request.Context(), tenantFrom(c), payload.ToInput())
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromAppointment(appointment))
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var payload request.AppointmentStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	appointment, err := h.usecase.UpdateStatus(c.Request.Context(), tenantFrom(c), c.Param("id"), entities.AppointmentStatus(payload.Status))
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(appointment))
}

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appointment, err := h.usecase.GetByID(c.Request.Context(), tenantFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointment(appointment))
}

// List returns the tenant's appointments; ?date=2006-01-02 narrows to one
// calendar day.
func (h *AppointmentHandler) List(c *gin.Context) {
	var (
		appointments []entities.Appointment
		err          error
	)
	if date := c.Query("date"); date != "" {
		appointments, err = h.usecase.ListByDate(c.Request.Context(), tenantFrom(c), date)
	} else {
		appointments, err = h.usecase.List(c.Request.Context(), tenantFrom(c))
	}
	if err != nil {
		appErr := mapAppointmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAppointments(appointments))
}

func mapAppointmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAppointmentID),
		errors.Is(err, usecase.ErrInvalidAppointmentDate),
		errors.Is(err, usecase.ErrInvalidAppointmentTime):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPastDate):
		return pkg.NewDomainErrorSimple("PAST_DATE", "Appointment date is in the past", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		return pkg.NewDomainErrorSimple("APPOINTMENT_NOT_FOUND", "Appointment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSlotTaken):
		return pkg.NewDomainErrorSimple("SLOT_TAKEN", "Slot already taken", http.StatusConflict)
	case errors.Is(err, usecase.ErrClientAlreadyScheduled):
		return pkg.NewDomainErrorSimple("CLIENT_ALREADY_SCHEDULED", "Client already has an appointment that day", http.StatusConflict)
	case errors.Is(err, usecase.ErrAppointmentClosed), errors.Is(err, usecase.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("APPOINTMENT_CLOSED", "Appointment status does not allow this operation", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
