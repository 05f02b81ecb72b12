package routes

import (
	"time"

	"github.com/enosgb/admarket-back/controllers"
	"github.com/enosgb/admarket-back/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const cacheTimeout = 60 * time.Second

// SetupRouter builds the gin.Engine and registers every route.
func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authController := controllers.NewAuthController()
	userController := controllers.NewUserController()
	categoryController := controllers.NewCategoryController()
	productController := controllers.NewProductController()
	imageController := controllers.NewProductImageController()
	storeController := controllers.NewStoreController()
	adController := controllers.NewAdController()
	favoriteController := controllers.NewFavoriteController()

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/reset_password", authController.ResetPassword)
		auth.POST("/reset_password_confirm", authController.ResetPasswordConfirm)

		auth.POST("/logout", middleware.JWTAuthMiddleware(), authController.Logout)
		auth.PUT("/change_password", middleware.JWTAuthMiddleware(), authController.ChangePassword)
	}

	categories := api.Group("/categories", middleware.JWTAuthMiddleware(), middleware.AdminOrReadOnly())
	{
		categories.GET("", categoryController.List)
		categories.POST("", categoryController.Create)
		categories.GET("/:id", categoryController.Get)
		categories.PUT("/:id", categoryController.Update)
		categories.PATCH("/:id", categoryController.Patch)
		categories.DELETE("/:id", categoryController.Delete)
	}

	products := api.Group("/products", middleware.JWTAuthMiddleware(), middleware.AdminOrReadOnly())
	{
		products.GET("", productController.List)
		products.POST("", productController.Create)
		products.GET("/:id", productController.Get)
		products.PUT("/:id", productController.Update)
		products.PATCH("/:id", productController.Patch)
		products.DELETE("/:id", productController.Delete)

		products.POST("/:id/images", imageController.Create)
		products.GET("/images/:id", imageController.Get)
		products.PUT("/images/:id", imageController.Update)
		products.PATCH("/images/:id", imageController.Patch)
		products.DELETE("/images/:id", imageController.Delete)
	}

	stores := api.Group("/stores", middleware.JWTAuthMiddleware(), middleware.AdminOrReadOnly())
	{
		stores.GET("", storeController.List)
		stores.POST("", storeController.Create)
		stores.GET("/:id", storeController.Get)
		stores.PUT("/:id", storeController.Update)
		stores.PATCH("/:id", storeController.Patch)
		stores.DELETE("/:id", storeController.Delete)
	}

	ads := api.Group("/ads")
	{
		public := ads.Group("/public", middleware.CachePage(cacheTimeout))
		{
			public.GET("", adController.PublicList)
			public.GET("/:id", adController.PublicGet)
		}

		authed := ads.Group("", middleware.JWTAuthMiddleware(), middleware.AdminOrReadOnly())
		{
			authed.GET("", adController.List)
			authed.POST("", adController.Create)
			authed.GET("/:id", adController.Get)
			authed.PUT("/:id", adController.Update)
			authed.PATCH("/:id", adController.Patch)
			authed.DELETE("/:id", adController.Delete)
		}
	}

	favorites := api.Group("/favorites", middleware.JWTAuthMiddleware())
	{
		favorites.GET("", favoriteController.List)
		favorites.POST("", favoriteController.Create)
		favorites.GET("/:id", favoriteController.Get)
		favorites.DELETE("/:id", favoriteController.Delete)
	}

	users := api.Group("/users", middleware.JWTAuthMiddleware())
	{
		users.GET("", userController.List)
		users.POST("", userController.Create)
		users.GET("/:id", userController.Get)
		users.PUT("/:id", userController.Update)
		users.PATCH("/:id", userController.Update)
		users.DELETE("/:id", userController.Delete)
	}

	return r
}
