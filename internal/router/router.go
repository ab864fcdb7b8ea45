package router

import (
	"github.com/gin-gonic/gin"
	"github.com/princesss/catalog-backend/config"
	"github.com/princesss/catalog-backend/internal/app/controller"
	"github.com/princesss/catalog-backend/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	catalogController *controller.CatalogController
	productController *controller.ProductController
	variantController *controller.VariantController
	colorController   *controller.ColorController
	commentController *controller.CommentController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	productController *controller.ProductController,
	variantController *controller.VariantController,
	colorController *controller.ColorController,
	commentController *controller.CommentController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		catalogController: catalogController,
		productController: productController,
		variantController: variantController,
		colorController:   colorController,
		commentController: commentController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Catalog API is running",
		})
	})

	admin := []gin.HandlerFunc{
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole("admin"),
	}

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
		}

		products := v1.Group("/products")
		{
			products.GET("/export", append(admin, r.productController.ExportProducts)...)
			products.GET("/:id", r.catalogController.GetProduct)
			products.POST("", append(admin, r.productController.CreateProduct)...)
			products.PUT("/:id", append(admin, r.productController.UpdateProduct)...)
			products.DELETE("/:id", append(admin, r.productController.DeleteProduct)...)
		}

		variants := v1.Group("/variants")
		{
			variants.GET("/:id", r.variantController.GetVariant)
			variants.POST("", append(admin, r.variantController.CreateVariant)...)
			variants.PATCH("/:id", append(admin, r.variantController.UpdateVariant)...)
			variants.DELETE("/:id", append(admin, r.variantController.DeleteVariant)...)
			variants.POST("/:id/images", append(admin, r.variantController.AppendImages)...)
			variants.PUT("/:id/images/resort", append(admin, r.variantController.ResortImages)...)
		}

		images := v1.Group("/images")
		{
			images.DELETE("/:id", append(admin, r.variantController.DeleteImage)...)
		}

		colors := v1.Group("/colors")
		{
			colors.GET("", r.colorController.ListColors)
			colors.GET("/:id", r.colorController.GetColor)
			colors.POST("", append(admin, r.colorController.CreateColor)...)
			colors.DELETE("/:id", append(admin, r.colorController.DeleteColor)...)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("", r.commentController.ListComments)
			comments.POST("", r.commentController.CreateComment)
			comments.DELETE("/:id", append(admin, r.commentController.DeleteComment)...)
		}

		v1.GET("/rating", r.commentController.GetRating)
	}

	v2 := router.Group("/v2")
	{
		v2.GET("/products", r.catalogController.ListProducts)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
