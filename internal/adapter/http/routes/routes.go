package routes

import (
	"log"
	"os"
	"strconv"

	_ "oficina_pro/docs" // This will be auto-generated
	"oficina_pro/internal/adapter/http/handlers"
	"oficina_pro/internal/adapter/http/middleware"
	repository2 "oficina_pro/internal/adapter/persistence/repository"
	"oficina_pro/internal/infrastructure/database"
	"oficina_pro/internal/infrastructure/insights"
	"oficina_pro/internal/infrastructure/notifications"
	"oficina_pro/internal/infrastructure/payments"
	"oficina_pro/internal/scheduler"
	"oficina_pro/internal/usecase"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	orderRepo := repository2.NewServiceOrderDynamoRepository(ddb)
	clientRepo := repository2.NewClientDynamoRepository(ddb)
	vehicleRepo := repository2.NewVehicleDynamoRepository(ddb)
	appointmentRepo := repository2.NewAppointmentDynamoRepository(ddb)
	partRepo := repository2.NewPartDynamoRepository(ddb)
	employeeRepo := repository2.NewEmployeeDynamoRepository(ddb)
	txRepo := repository2.NewTransactionDynamoRepository(ddb)
	userRepo := repository2.NewUserDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	var dispatcher interfaces.IMessageDispatcher
	twilioDispatcher, err := notifications.NewTwilioWhatsAppDispatcher()
	if err != nil {
		log.Printf("Twilio dispatcher not configured: %v", err)
	} else {
		dispatcher = twilioDispatcher
	}

	orderUseCase := usecase.NewServiceOrderUseCase(orderRepo, clientRepo, vehicleRepo, txRepo, paymentGateway)
	billingUseCase := usecase.NewBillingUseCase(orderRepo, clientRepo, dispatcher)
	appointmentUseCase := usecase.NewAppointmentUseCase(appointmentRepo, clientRepo)
	clientUseCase := usecase.NewClientUseCase(clientRepo, vehicleRepo, orderRepo)
	partUseCase := usecase.NewPartUseCase(partRepo)
	employeeUseCase := usecase.NewEmployeeUseCase(employeeRepo)
	txUseCase := usecase.NewTransactionUseCase(txRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(orderRepo, partRepo, appointmentRepo, txRepo, insights.NewHeuristicProvider())

	arrearsScheduler := scheduler.NewArrearsScheduler(billingUseCase, userRepo)
	if err := arrearsScheduler.Start(); err != nil {
		log.Printf("Arrears scheduler not started: %v", err)
	}

	orderHandler := handlers.NewServiceOrderHandler(orderUseCase)
	billingHandler := handlers.NewBillingHandler(billingUseCase)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUseCase)
	clientHandler := handlers.NewClientHandler(clientUseCase)
	partHandler := handlers.NewPartHandler(partUseCase)
	employeeHandler := handlers.NewEmployeeHandler(employeeUseCase)
	txHandler := handlers.NewTransactionHandler(txUseCase)
	authHandler := handlers.NewAuthHandler(authUseCase)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	v1.POST("/auth/login", authHandler.Login)

	// Rotas autenticadas
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(authUseCase))
	addBillingRoutes(authed, orderHandler, billingHandler)
	addWorkshopRoutes(authed, clientHandler, appointmentHandler, partHandler, employeeHandler, txHandler, dashboardHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
