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

func newAppointmentRouter(h *AppointmentHandler) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextTenantKey, testTenant) })
	r.POST("/v1/appointments", h.Create)
	r.GET("/v1/appointments", h.List)
	r.GET("/v1/appointments/:id", h.GetByID)
	r.PATCH("/v1/appointments/:id/status", h.UpdateStatus)
	return r
}

func TestAppointmentHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/appointments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("past date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().Schedule(gomock.Any(), testTenant, gomock.Any()).Return(entities.Appointment{}, usecase.ErrPastDate)

		body := `{"client_id":"c-1","date":"2020-01-10","time":"09:00"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/appointments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("slot taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().
			Schedule(gomock.Any(), testTenant, usecase.ScheduleInput{
				ClientID: "c-1",
				Date:     "2030-01-10",
				Time:     "09:00",
			}).
			Return(entities.Appointment{}, usecase.ErrSlotTaken)

		body := `{"client_id":"c-1","date":"2030-01-10","time":"09:00"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/appointments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("client already scheduled that day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().Schedule(gomock.Any(), testTenant, gomock.Any()).Return(entities.Appointment{}, usecase.ErrClientAlreadyScheduled)

		body := `{"client_id":"c-1","date":"2030-01-10","time":"14:00"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/appointments", bytes.NewBufferString(body))
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
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().
			Schedule(gomock.Any(), testTenant, gomock.Any()).
			Return(entities.Appointment{
				ID:       "ap-1",
				ClientID: "c-1",
				Date:     "2030-01-10",
				Time:     "09:00",
				Status:   entities.AppointmentStatusAgendado,
			}, nil)

		body := `{"client_id":"c-1","service_type":"revisao","date":"2030-01-10","time":"09:00"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/appointments", bytes.NewBufferString(body))
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
		if got["status"] != "AGENDADO" {
			t.Fatalf("unexpected body: %v", got)
		}
	})
}

func TestAppointmentHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("without date filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().List(gomock.Any(), testTenant).Return([]entities.Appointment{{ID: "ap-1"}, {ID: "ap-2"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/appointments", nil)
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
			t.Fatalf("expected 2 appointments, got %d", len(got))
		}
	})

	t.Run("with date filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().ListByDate(gomock.Any(), testTenant, "2030-01-10").Return([]entities.Appointment{{ID: "ap-1", Date: "2030-01-10"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/appointments?date=2030-01-10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestAppointmentHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("closed appointment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().
			UpdateStatus(gomock.Any(), testTenant, "ap-1", entities.AppointmentStatusConfirmado).
			Return(entities.Appointment{}, usecase.ErrAppointmentClosed)

		req := httptest.NewRequest(http.MethodPatch, "/v1/appointments/ap-1/status", bytes.NewBufferString(`{"status":"CONFIRMADO"}`))
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
		uc := mocks.NewMockIAppointmentUseCase(ctrl)
		r := newAppointmentRouter(NewAppointmentHandler(uc))

		uc.EXPECT().
			UpdateStatus(gomock.Any(), testTenant, "ap-1", entities.AppointmentStatusConfirmado).
			Return(entities.Appointment{ID: "ap-1", Status: entities.AppointmentStatusConfirmado}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/appointments/ap-1/status", bytes.NewBufferString(`{"status":"CONFIRMADO"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
