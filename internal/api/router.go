package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/config"
	"github.com/kashala/atm-finder-go/internal/handler"
	"github.com/kashala/atm-finder-go/internal/middleware"
	"github.com/kashala/atm-finder-go/internal/service"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	ATMs   *handler.ATMHandler
	States *handler.StateHandler
	Visits *handler.VisitHandler
	Auth   *handler.AuthHandler
	Legacy *handler.LegacyHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, auth *service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "ATM Finder API is running",
		})
	})

	requireAuth := middleware.Auth(auth)

	// 旧版 PHP 接口兼容
	legacy := r.Group("/legacy")
	{
		legacy.POST("/login.php", h.Legacy.Login)
		legacy.POST("/register.php", h.Legacy.Register)
	}

	// API 路由组
	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.GET("/me", requireAuth, h.Auth.Me)
			authGroup.PATCH("/prefs", requireAuth, h.Auth.UpdatePrefs)
		}

		atms := api.Group("/atms")
		{
			atms.GET("", h.ATMs.List)
			atms.GET("/nearby", h.ATMs.Nearby)
			atms.GET("/best", h.ATMs.Best)
			atms.GET("/banks", h.ATMs.Banks)
			atms.GET("/states", h.States.List)
			atms.GET("/states/stream", h.States.Stream)
			atms.GET("/:id", h.ATMs.GetByID)
			atms.GET("/:id/route", h.ATMs.Route)
			atms.GET("/:id/state", h.States.Get)
			atms.PUT("/:id/state", requireAuth, h.States.Save)
		}

		visits := api.Group("/visits", requireAuth)
		{
			visits.GET("", h.Visits.List)
			visits.POST("", h.Visits.Create)
			visits.DELETE("", h.Visits.Clear)
		}
	}

	return r
}
