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

// TransactionHandler handles HTTP requests for the cash-flow ledger.

type TransactionHandler struct {
	usecase usecase.ITransactionUseCase
}

func NewTransactionHandler(uc usecase.ITransactionUseCase) *TransactionHandler {
	return &TransactionHandler{usecase: uc}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var payload request.TransactionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	tx, err := h.usecase.Create(c.Request.Context(), tenantFrom(c), payload.ToInput())
	if err != nil {
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromTransaction(tx))
}

func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.usecase.List(c.Request.Context(), tenantFrom(c))
	if err != nil {
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTransactions(txs))
}

func (h *TransactionHandler) Summary(c *gin.Context) {
	summary, err := h.usecase.Summary(c.Request.Context(), tenantFrom(c))
	if err != nil {
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), tenantFrom(c), c.Param("id")); err != nil {
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapTransactionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTransaction), errors.Is(err, usecase.ErrInvalidTransactionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLinkedTransaction):
		return pkg.NewDomainErrorSimple("LINKED_TRANSACTION", "Transaction is linked to a service order", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
