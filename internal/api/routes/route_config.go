package routes

import (
	"github.com/gofiber/fiber/v2"

	"qrqaema/internal/api/handlers"
	"qrqaema/internal/middleware"
	"qrqaema/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RestaurantHandler handlers.RestaurantHandler
	CatalogHandler    handlers.CatalogHandler
	TableHandler      handlers.TableHandler
	OrderHandler      handlers.OrderHandler
	HelpHandler       handlers.HelpHandler
	AnalyticsHandler  handlers.AnalyticsHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Restaurants()
	c.Customer()
	c.Admin()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/activate", c.UserHandler.Activate)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/password-reset", c.UserHandler.RequestPasswordReset)
		user.Post("/password-reset/confirm", c.UserHandler.ConfirmPasswordReset)
		user.Post("/recover-username", c.UserHandler.RecoverUsername)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Delete("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.DeleteMe)
	}
}

func (c *Config) Restaurants() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	restaurants := c.App.Group("/api/v1/restaurants", auth)
	restaurants.Get("", c.RestaurantHandler.GetMine)

	helpRequests := c.App.Group("/api/v1/help-requests", auth)
	helpRequests.Get("", c.HelpHandler.GetMyRequests)

	restaurant := restaurants.Group("/:restaurant_id")
	{
		restaurant.Get("", c.RestaurantHandler.Get)
		restaurant.Patch("", c.RestaurantHandler.Update)
		restaurant.Delete("", c.RestaurantHandler.Delete)
		restaurant.Post("/images", c.RestaurantHandler.UploadImage)

		restaurant.Get("/staff", c.RestaurantHandler.GetStaff)
		restaurant.Post("/staff", c.RestaurantHandler.AddStaff)
		restaurant.Delete("/staff/:staff_id", c.RestaurantHandler.RemoveStaff)

		restaurant.Post("/menus", c.CatalogHandler.CreateMenu)
		restaurant.Get("/menus", c.CatalogHandler.GetMenus)
		restaurant.Get("/menus/:menu_id", c.CatalogHandler.GetMenu)
		restaurant.Patch("/menus/:menu_id", c.CatalogHandler.UpdateMenu)
		restaurant.Delete("/menus/:menu_id", c.CatalogHandler.DeleteMenu)
		restaurant.Post("/menus/:menu_id/default", c.CatalogHandler.SetDefaultMenu)

		restaurant.Post("/categories", c.CatalogHandler.CreateCategory)
		restaurant.Patch("/categories/:category_id", c.CatalogHandler.UpdateCategory)
		restaurant.Delete("/categories/:category_id", c.CatalogHandler.DeleteCategory)
		restaurant.Post("/categories/:category_id/image", c.CatalogHandler.UploadCategoryImage)

		restaurant.Post("/items", c.CatalogHandler.CreateMenuItem)
		restaurant.Patch("/items/:item_id", c.CatalogHandler.UpdateMenuItem)
		restaurant.Delete("/items/:item_id", c.CatalogHandler.DeleteMenuItem)
		restaurant.Post("/items/:item_id/image", c.CatalogHandler.UploadMenuItemImage)

		restaurant.Post("/tables", c.TableHandler.AddTable)
		restaurant.Get("/tables", c.TableHandler.GetTables)
		restaurant.Get("/tables/:table_id", c.TableHandler.GetTable)
		restaurant.Patch("/tables/:table_id", c.TableHandler.UpdateTable)
		restaurant.Delete("/tables/:table_id", c.TableHandler.DeleteTable)
		restaurant.Get("/tables/:table_id/qrcode", c.TableHandler.GetQrCode)

		restaurant.Get("/orders", c.OrderHandler.GetOrders)
		restaurant.Get("/orders/:order_id", c.OrderHandler.GetOrder)
		restaurant.Patch("/orders/:order_id", c.OrderHandler.UpdateOrder)
		restaurant.Delete("/orders/:order_id", c.OrderHandler.DeleteOrder)

		restaurant.Get("/help-requests", c.HelpHandler.GetRequests)
		restaurant.Get("/help-requests/:request_id", c.HelpHandler.GetRequest)
		restaurant.Patch("/help-requests/:request_id", c.HelpHandler.UpdateRequest)
		restaurant.Delete("/help-requests/:request_id", c.HelpHandler.DeleteRequest)
	}
}

// Customer routes are public; the QR code on the table links here.
func (c *Config) Customer() {
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	public := c.App.Group("/api/v1/public/restaurants/:restaurant_id", optional)
	{
		public.Get("", c.RestaurantHandler.GetPublic)
		public.Get("/menu", c.CatalogHandler.GetCustomerMenu)
		public.Post("/orders", c.OrderHandler.PlaceOrder)
		public.Get("/orders/:order_id/status", c.OrderHandler.GetOrderStatus)
		public.Get("/tables/:number/orders", c.OrderHandler.GetTableOrders)
		public.Post("/help-requests", c.HelpHandler.CreateRequest)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group(
		"/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.SuperuserMiddleware(),
	)
	admin.Get("/stats", c.AnalyticsHandler.PlatformStats)
}
