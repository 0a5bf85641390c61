package routes

import (
	"oficina_pro/internal/adapter/http/handlers"
	"oficina_pro/internal/adapter/http/middleware"
	"oficina_pro/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathClients      = "/clients"
	PathVehicles     = "/vehicles"
	PathAppointments = "/appointments"
	PathParts        = "/parts"
	PathEmployees    = "/employees"
	PathTransactions = "/transactions"
	PathDashboard    = "/dashboard"
)

func addWorkshopRoutes(
	rg *gin.RouterGroup,
	clientHandler *handlers.ClientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	partHandler *handlers.PartHandler,
	employeeHandler *handlers.EmployeeHandler,
	txHandler *handlers.TransactionHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	ownerOnly := middleware.RequireRole(entities.RoleDono)

	clients := rg.Group(PathClients)
	{
		clients.POST("", clientHandler.Create)
		clients.GET("", clientHandler.List)
		clients.GET("/:id", clientHandler.GetByID)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", ownerOnly, clientHandler.Delete)
		clients.POST("/:id/vehicles", clientHandler.AddVehicle)
		clients.GET("/:id/vehicles", clientHandler.ListVehicles)
	}

	vehicles := rg.Group(PathVehicles)
	{
		vehicles.PUT("/:vehicle_id", clientHandler.UpdateVehicle)
		vehicles.DELETE("/:vehicle_id", clientHandler.DeleteVehicle)
	}

	appointments := rg.Group(PathAppointments)
	{
		appointments.POST("", appointmentHandler.Create)
		appointments.GET("", appointmentHandler.List)
		appointments.GET("/:id", appointmentHandler.GetByID)
		appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
	}

	parts := rg.Group(PathParts)
	{
		parts.POST("", partHandler.Create)
		parts.GET("", partHandler.List)
		parts.GET("/:id", partHandler.GetByID)
		parts.PUT("/:id", partHandler.Update)
		parts.PATCH("/:id/stock", partHandler.AdjustStock)
		parts.DELETE("/:id", partHandler.Delete)
	}

	employees := rg.Group(PathEmployees, ownerOnly)
	{
		employees.POST("", employeeHandler.Create)
		employees.GET("", employeeHandler.List)
		employees.PUT("/:id", employeeHandler.Update)
		employees.DELETE("/:id", employeeHandler.Delete)
	}

	transactions := rg.Group(PathTransactions, ownerOnly)
	{
		transactions.POST("", txHandler.Create)
		transactions.GET("", txHandler.List)
		transactions.GET("/summary", txHandler.Summary)
		transactions.DELETE("/:id", txHandler.Delete)
	}

	dashboard := rg.Group(PathDashboard)
	{
		dashboard.GET("/summary", dashboardHandler.Summary)
	}
}
