package routes

import (
	"junglepets/catalog"
	"junglepets/controllers"
	"junglepets/middleware"
	"junglepets/services"

	"github.com/gin-gonic/gin"
)

func Register(
	r *gin.Engine,
	users *services.UserStore,
	cart *services.CartStore,
	cat *catalog.Catalog,
) {
	userController := controllers.NewUserController(users)
	cartController := controllers.NewCartController(cart, cat)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(middleware.AuthRate, middleware.AuthBurst))
	{
		auth.POST("/register", userController.Register)
		auth.POST("/login", userController.Login)
		auth.POST("/logout", userController.Logout)
		auth.GET("/session", userController.Session)
		auth.PATCH("/profile", userController.UpdateProfile)

		// Development/debug controls
		auth.GET("/users", userController.ListUsers)
		auth.GET("/stats", userController.Stats)
		auth.GET("/export", userController.Export)
		auth.DELETE("/reset", userController.Reset)
	}

	r.GET("/products", cartController.Products)

	api := r.Group("/cart")
	{
		api.GET("/", cartController.GetCart)
		api.POST("/add", cartController.AddItem)
		api.DELETE("/remove/:product_id", cartController.RemoveItem)
		api.PUT("/quantity", cartController.SetQuantity)
		api.GET("/totals", cartController.Totals)
		api.POST("/checkout", cartController.Checkout)
	}
}
