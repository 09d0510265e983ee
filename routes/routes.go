package routes

import (
	"net/http"
	"time"

	"beautyboosters/handlers"
	"beautyboosters/middleware"
	"beautyboosters/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CORSConfig is the permissive policy shared by every endpoint. Pre-flight requests are
// answered with an empty 200.
func CORSConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"authorization", "x-client-info", "apikey", "content-type", "x-session-id"},
		ExposeHeaders:             []string{"Content-Length", "X-Session-ID", "X-Request-ID"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
}

// RegisterCartRoutes registers the session cart endpoints.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.Use(middleware.CartSessionMiddleware(hb.SecureCookies))
		api.GET("", hb.GetCartHandler)
		api.DELETE("", hb.ClearCartHandler)
		api.POST("/items", hb.AddCartItem)
		api.DELETE("/items/:id", hb.RemoveCartItem)
		api.GET("/totals", hb.GetCartTotals)
		api.POST("/checkout", hb.CheckoutHandler)
	}
}

// RegisterScheduleRoutes registers the admin calendar endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, utils.RoleAdmin))
		api.GET("/grid", hb.GetScheduleGrid)
		api.POST("/drop", hb.DropHandler)
	}
}

// RegisterNotificationRoutes registers the realtime chat toast stream.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, utils.RoleAdmin, utils.RoleBooster, utils.RoleCustomer))
		api.GET("/stream", hb.StreamToastsHandler)
	}
}

// RegisterCollaboratorRoutes registers gift cards, job titles, emails and the Stripe key.
func RegisterCollaboratorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/gift-cards", hb.CreateGiftCardHandler)
		api.POST("/job-title", hb.GenerateJobTitleHandler)

		api.POST("/email/auth-hook", hb.AuthHookHandler)
		api.POST("/email/send", hb.SendEmailHandler)

		api.GET("/stripe/publishable-key", hb.PublishableKeyHandler)
		api.POST("/stripe/publishable-key", hb.PublishableKeyHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"mongo":     status.Mongo,
			"redis":     status.Redis,
			"checkedAt": status.CheckedAt,
		})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, metricsEnabled bool) {
	r.Use(cors.New(CORSConfig()))
	if metricsEnabled {
		r.Use(middleware.MetricsMiddleware())
		RegisterMetricsRoute(r)
	}

	RegisterHealthRoute(r)
	RegisterCartRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterCollaboratorRoutes(r, hb)
}
