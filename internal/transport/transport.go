package transport

import (
	"time"

	"github.com/Kgadrw/profit-backend/internal/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterConfig struct {
	JWTSecret   string
	RateLimit   int
	RedisClient *redis.Client
}

func InitRoutes(
	cfg RouterConfig,
	authHandler *AuthHandler,
	reminderHandler *ReminderHandler,
	clientHandler *ClientHandler,
	productHandler *ProductHandler,
	saleHandler *SaleHandler,
	reportHandler *ReportHandler,
) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	if cfg.RedisClient != nil && cfg.RateLimit > 0 {
		router.Use(middleware.RateLimit(cfg.RedisClient, cfg.RateLimit))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authorized := api.Group("")
		authorized.Use(middleware.Auth(cfg.JWTSecret))
		{
			authorized.GET("/profile", authHandler.GetProfile)
			authorized.POST("/profile/telegram", authHandler.LinkTelegram)

			reminders := authorized.Group("/reminders")
			{
				reminders.POST("", reminderHandler.CreateReminder)
				reminders.GET("", reminderHandler.GetReminders)
				reminders.GET("/:id", reminderHandler.GetReminder)
				reminders.PUT("/:id", reminderHandler.UpdateReminder)
				reminders.DELETE("/:id", reminderHandler.DeleteReminder)
				reminders.POST("/:id/complete", reminderHandler.CompleteReminder)
				reminders.POST("/:id/cancel", reminderHandler.CancelReminder)
			}

			clients := authorized.Group("/clients")
			{
				clients.POST("", clientHandler.CreateClient)
				clients.GET("", clientHandler.GetClients)
				clients.GET("/:id", clientHandler.GetClient)
				clients.PUT("/:id", clientHandler.UpdateClient)
				clients.DELETE("/:id", clientHandler.DeleteClient)
			}

			products := authorized.Group("/products")
			{
				products.POST("", productHandler.CreateProduct)
				products.GET("", productHandler.GetProducts)
				products.GET("/low-stock", productHandler.GetLowStockProducts)
				products.GET("/:id", productHandler.GetProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			sales := authorized.Group("/sales")
			{
				sales.POST("", saleHandler.RecordSale)
				sales.GET("", saleHandler.GetSales)
				sales.GET("/:id", saleHandler.GetSale)
			}

			reports := authorized.Group("/reports")
			{
				reports.GET("/sales-summary", reportHandler.GetSalesSummary)
				reports.GET("/top-products", reportHandler.GetTopProducts)
				reports.GET("/upcoming-reminders", reportHandler.GetUpcomingReminders)
				reports.GET("/dashboard", reportHandler.GetDashboard)
			}
		}
	}

	return router
}
