package handlers

import (
	"net/http"

	"bookreview/internal/logger"
	"bookreview/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.welcome)
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		// Identity
		api.POST("/signup", h.signup)
		api.POST("/login", h.login)
		api.GET("/me", h.authMiddleware, h.me)

		// Catalogue
		api.GET("/books", h.listBooks)
		api.POST("/books", h.authMiddleware, h.createBook)
		api.GET("/books/search", h.searchBooks)
		api.GET("/books/:id", h.getBook)
		api.PUT("/books/:id", h.authMiddleware, h.updateBook)
		api.DELETE("/books/:id", h.authMiddleware, h.deleteBook)

		// Reviews
		api.GET("/books/:id/reviews", h.listBookReviews)
		api.POST("/books/:id/reviews", h.authMiddleware, h.addReview)
		api.GET("/reviews", h.authMiddleware, h.listAllReviews)
		api.PUT("/reviews/:id", h.authMiddleware, h.updateReview)
		api.DELETE("/reviews/:id", h.authMiddleware, h.deleteReview)
	}

	router.NoRoute(h.routeNotFound)

	return router
}

// @Summary      API welcome
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":       "Welcome to Book Review API",
		"documentation": "See README.md for API documentation",
	})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) routeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Route not found: " + c.Request.URL.Path,
	})
}
