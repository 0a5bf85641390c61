package handlers

import (
	"bytes"
	"encoding/json"
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

func newClientRouter(h *ClientHandler) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextTenantKey, testTenant) })
	r.POST("/v1/clients", h.Create)
	r.GET("/v1/clients", h.List)
	r.DELETE("/v1/clients/:id", h.Delete)
	r.POST("/v1/clients/:id/vehicles", h.AddVehicle)
	r.GET("/v1/clients/:id/vehicles", h.ListVehicles)
	return r
}

func TestClientHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/clients", bytes.NewBufferString(`{"phone":"+5511999990000"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		uc.EXPECT().
			Create(gomock.Any(), testTenant, usecase.ClientInput{Name: "Maria Silva", Phone: "+5511999990000"}).
			Return(entities.Client{ID: "c-1", Name: "Maria Silva", Phone: "+5511999990000"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/clients", bytes.NewBufferString(`{"name":"Maria Silva","phone":"+5511999990000"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got["id"] != "c-1" {
			t.Fatalf("unexpected body: %v", got)
		}
	})
}

func TestClientHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("cascade delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		uc.EXPECT().DeleteCascade(gomock.Any(), testTenant, "c-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/clients/c-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("client not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		uc.EXPECT().DeleteCascade(gomock.Any(), testTenant, "nope").Return(usecase.ErrClientNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/v1/clients/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestClientHandler_AddVehicle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("plate already in use", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		uc.EXPECT().
			AddVehicle(gomock.Any(), testTenant, "c-1", usecase.VehicleInput{Plate: "ABC1D23", Model: "Onix"}).
			Return(entities.Vehicle{}, usecase.ErrPlateAlreadyInUse)

		req := httptest.NewRequest(http.MethodPost, "/v1/clients/c-1/vehicles", bytes.NewBufferString(`{"plate":"ABC1D23","model":"Onix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		uc.EXPECT().
			AddVehicle(gomock.Any(), testTenant, "c-1", usecase.VehicleInput{Plate: "ABC1D23", Model: "Onix", Year: 2020}).
			Return(entities.Vehicle{ID: "v-1", ClientID: "c-1", Plate: "ABC1D23", Model: "Onix", Year: 2020}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/clients/c-1/vehicles", bytes.NewBufferString(`{"plate":"ABC1D23","model":"Onix","year":2020}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestClientHandler_ListVehicles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIClientUseCase(ctrl)
		r := newClientRouter(NewClientHandler(uc))

		uc.EXPECT().ListVehicles(gomock.Any(), testTenant, "c-1").Return([]entities.Vehicle{{ID: "v-1"}, {ID: "v-2"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/clients/c-1/vehicles", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 vehicles, got %d", len(got))
		}
	})
}
