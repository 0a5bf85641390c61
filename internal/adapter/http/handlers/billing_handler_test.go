package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"oficina_pro/internal/adapter/http/handlers/mocks"
	"oficina_pro/internal/adapter/http/middleware"
	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newBillingRouter(h *BillingHandler) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextTenantKey, testTenant) })
	r.GET("/v1/billing/summary", h.Summary)
	r.POST("/v1/orders/:id/collection-notice", h.SendCollectionNotice)
	return r
}

func TestBillingHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingUseCase(ctrl)
		r := newBillingRouter(NewBillingHandler(uc))

		uc.EXPECT().Summary(gomock.Any(), testTenant).Return(usecase.ArrearsSummary{
			TotalOutstanding: 950,
			DebtorCount:      2,
			AverageDebt:      475,
			OverdueOrders:    1,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/billing/summary", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got usecase.ArrearsSummary
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got.DebtorCount != 2 || got.AverageDebt != 475 {
			t.Fatalf("unexpected summary: %+v", got)
		}
	})

	t.Run("usecase failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingUseCase(ctrl)
		r := newBillingRouter(NewBillingHandler(uc))

		uc.EXPECT().Summary(gomock.Any(), testTenant).Return(usecase.ArrearsSummary{}, errors.New("dynamo unavailable"))

		req := httptest.NewRequest(http.MethodGet, "/v1/billing/summary", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestBillingHandler_SendCollectionNotice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingUseCase(ctrl)
		r := newBillingRouter(NewBillingHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/os-1/collection-notice", bytes.NewBufferString(`{"operator":"ana"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("order not collectable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingUseCase(ctrl)
		r := newBillingRouter(NewBillingHandler(uc))

		uc.EXPECT().
			SendCollectionNotice(gomock.Any(), testTenant, "os-1", "ana", usecase.TierMild).
			Return(entities.ServiceOrder{}, usecase.ErrOrderNotCollectable)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/os-1/collection-notice", bytes.NewBufferString(`{"operator":"ana","tier":"mild"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("client without phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingUseCase(ctrl)
		r := newBillingRouter(NewBillingHandler(uc))

		uc.EXPECT().
			SendCollectionNotice(gomock.Any(), testTenant, "os-1", "ana", usecase.TierFormal).
			Return(entities.ServiceOrder{}, usecase.ErrClientPhoneMissing)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/os-1/collection-notice", bytes.NewBufferString(`{"operator":"ana","tier":"formal"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingUseCase(ctrl)
		r := newBillingRouter(NewBillingHandler(uc))

		uc.EXPECT().
			SendCollectionNotice(gomock.Any(), testTenant, "os-1", "ana", usecase.TierFinal).
			Return(entities.ServiceOrder{
				ID:            "os-1",
				PaymentStatus: entities.PaymentStatusAtrasado,
				CollectionLog: []entities.CollectionAttempt{{Operator: "ana", Tier: "final"}},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/os-1/collection-notice", bytes.NewBufferString(`{"operator":"ana","tier":"final"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["payment_status"] != "ATRASADO" {
			t.Fatalf("unexpected body: %v", got)
		}
	})
}
