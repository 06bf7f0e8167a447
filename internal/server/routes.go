package routes

import (
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registra todas las rutas de la API. Los handlers ya deben
// estar inicializados (middleware.InitAuth, middleware.InitPortfolio) antes
// de llamar a esta función.
func RegisterRoutes(router *gin.Engine) {
	router.POST("/signup", middleware.Signup)
	router.POST("/login", middleware.Login)

	// Configurar ruta de logout con opciones
	router.OPTIONS("/logout", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Status(200)
	})
	router.POST("/logout", middleware.AuthMiddleware(), middleware.Logout)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.PUT("/users", middleware.UpdateUser)
		protected.DELETE("/users", middleware.DeleteUser)

		protected.POST("/transactions", middleware.CreateTransaction)
		protected.GET("/transactions", middleware.GetUserTransactions)
		protected.GET("/transactions/:id", middleware.GetTransactionDetails)
		protected.DELETE("/transactions/:id", middleware.DeleteTransaction)
		protected.DELETE("/tickers/:ticker/transactions", middleware.DeleteTransactionsByTicker)
		protected.GET("/recent-transactions", middleware.GetRecentTransactions)

		protected.GET("/portfolio", middleware.GetPortfolio)
		protected.POST("/assets", middleware.AddAsset)
		protected.PUT("/assets/:id", middleware.UpdateAsset)
		protected.DELETE("/assets/:id", middleware.RemoveAsset)
		protected.POST("/assets/select", middleware.SetSelectedAsset)

		protected.GET("/settings", middleware.GetSettings)
		protected.PUT("/settings", middleware.UpdateSettings)
		protected.POST("/settings/reset", middleware.ResetSettings)

		protected.GET("/dashboard", middleware.GetDashboard)
		protected.GET("/performance", middleware.GetPerformance)
		protected.GET("/holdings", middleware.GetHoldings)
		protected.GET("/current-balance", middleware.GetCurrentBalance)
		protected.GET("/history", middleware.GetInvestmentHistory)
	}

	// Rutas protegidas por Clerk (integración con el frontend)
	clerkProtected := router.Group("/clerk")
	clerkProtected.Use(middleware.ClerkAuthMiddleware())
	{
		clerkProtected.GET("/me", middleware.GetUserFromClerk)
	}

	// Webhook de Clerk (verificado con Svix, sin JWT propio)
	router.POST("/webhooks/clerk", middleware.ClerkWebhookHandler)

	// Configurar opciones para rutas de administración
	router.OPTIONS("/admin/*path", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Admin-Key")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Status(200)
	})

	// Rutas de admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/users", middleware.GetUsers)
		admin.GET("/users/:id", middleware.GetUser)
		admin.DELETE("/users/:id", middleware.DeleteUserByAdmin)
		admin.GET("/users/email/:email", middleware.GetUserByEmail)
		admin.POST("/refresh-prices", middleware.ForcePriceUpdate)
	}

	router.POST("/request-reset-password", middleware.RequestResetPassword)
	router.POST("/reset-password", middleware.ResetPassword)
}
