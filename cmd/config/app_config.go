package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"qrqaema/internal/api/handlers"
	"qrqaema/internal/api/routes"
	"qrqaema/internal/middleware"
	"qrqaema/internal/utils"
	"qrqaema/internal/utils/mailing"
	"qrqaema/internal/utils/storage"
	"qrqaema/pkg/access"
	"qrqaema/pkg/analytics"
	"qrqaema/pkg/catalog"
	"qrqaema/pkg/help"
	"qrqaema/pkg/jwt"
	"qrqaema/pkg/order"
	"qrqaema/pkg/restaurant"
	"qrqaema/pkg/table"
	"qrqaema/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()

	// Repository
	accessRepository := access.NewAccessRepository(db)
	userRepository := user.NewUserRepository(db)
	restaurantRepository := restaurant.NewRestaurantRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	tableRepository := table.NewTableRepository(db)
	orderRepository := order.NewOrderRepository(db)
	helpRepository := help.NewHelpRepository(db)
	analyticsRepository := analytics.NewAnalyticsRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	policy := access.NewPolicy(accessRepository)
	userService := user.NewUserService(userRepository, jwtService, mailer, s3)
	restaurantService := restaurant.NewRestaurantService(restaurantRepository, accessRepository, policy, s3)
	catalogService := catalog.NewCatalogService(catalogRepository, restaurantService, policy, s3)
	tableService := table.NewTableService(tableRepository, policy, s3)
	orderService := order.NewOrderService(orderRepository, policy)
	helpService := help.NewHelpService(helpRepository, accessRepository, policy)
	analyticsService := analytics.NewAnalyticsService(analyticsRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)
	tableHandler := handlers.NewTableHandler(tableService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	helpHandler := handlers.NewHelpHandler(helpService, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RestaurantHandler: restaurantHandler,
		CatalogHandler:    catalogHandler,
		TableHandler:      tableHandler,
		OrderHandler:      orderHandler,
		HelpHandler:       helpHandler,
		AnalyticsHandler:  analyticsHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// NewOrderPurger wires the retention service used by the cron job in
// main.
func NewOrderPurger(db *gorm.DB) order.OrderService {
	accessRepository := access.NewAccessRepository(db)
	policy := access.NewPolicy(accessRepository)
	return order.NewOrderService(order.NewOrderRepository(db), policy)
}
