// Package gateway exposes the order engine over HTTP.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/example/ordercrm/pkg/config"
	"github.com/example/ordercrm/pkg/models"
	"github.com/example/ordercrm/pkg/orders"
)

const tenantKey = "tenant_id"

// AccountResolver maps an API key to the owning account. A nil account
// with a nil error means the key is unknown.
type AccountResolver interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Account, error)
}

type Gateway struct {
	config   *config.Config
	logger   *zap.Logger
	service  *orders.Service
	accounts AccountResolver
	router   *gin.Engine
}

func NewGateway(cfg *config.Config, logger *zap.Logger, service *orders.Service, accounts AccountResolver) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config:   cfg,
		logger:   logger,
		service:  service,
		accounts: accounts,
		router:   router,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := g.router.Group("/api/v1")
	v1.Use(g.tenantMiddleware())
	{
		ordersGroup := v1.Group("/orders")
		{
			ordersGroup.GET("", g.listOrders)
			ordersGroup.POST("", g.createOrder)
			ordersGroup.GET("/stats", g.getStats)
			ordersGroup.GET("/:id", g.getOrder)
			ordersGroup.PUT("/:id", g.updateOrder)
			ordersGroup.DELETE("/:id", g.deleteOrder)
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.config.Server.Host, g.config.Server.Port)
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (g *Gateway) Router() *gin.Engine {
	return g.router
}

func (g *Gateway) tenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		account, err := g.accounts.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			g.logger.Error("account lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown API key"})
			return
		}

		c.Set(tenantKey, account.ID)
		c.Next()
	}
}

func (g *Gateway) listOrders(c *gin.Context) {
	var q models.OrderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := g.service.List(c.Request.Context(), c.GetString(tenantKey), q)
	if err != nil {
		g.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (g *Gateway) getStats(c *gin.Context) {
	stats, err := g.service.Stats(c.Request.Context(), c.GetString(tenantKey))
	if err != nil {
		g.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (g *Gateway) createOrder(c *gin.Context) {
	var in models.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := g.service.Create(c.Request.Context(), c.GetString(tenantKey), in)
	if err != nil {
		g.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (g *Gateway) getOrder(c *gin.Context) {
	order, err := g.service.Get(c.Request.Context(), c.GetString(tenantKey), c.Param("id"))
	if err != nil {
		g.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) updateOrder(c *gin.Context) {
	var u models.OrderUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := g.service.Update(c.Request.Context(), c.GetString(tenantKey), c.Param("id"), u)
	if err != nil {
		g.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	if err := g.service.Delete(c.Request.Context(), c.GetString(tenantKey), c.Param("id")); err != nil {
		g.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (g *Gateway) renderError(c *gin.Context, err error) {
	var ve *orders.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, orders.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "dateFrom"})
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
