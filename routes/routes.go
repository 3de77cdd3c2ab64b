package routes

import (
	"net/http"
	"time"

	"reviewdesk/handlers"
	"reviewdesk/middleware"
	"reviewdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReviewRoutes registers the review dashboard endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/review")
	{
		// Protected routes (Require Authentication)
		api.Use(middleware.SessionMiddleware(hb.SessionMaxAge))
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache))
		api.GET("/new/:booking_id", hb.SubmitReviewHandler)
		api.POST("/new/:booking_id", hb.SubmitReviewHandler)
		api.GET("/reviews-made", hb.ReviewsMadeHandler)
		api.GET("/reviews-received", hb.ReviewsReceivedHandler)
		api.PUT("/profile/:role", hb.SwitchProfileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the last monitor snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		if status.CheckedAt.IsZero() || status.Healthy() {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm reviewdesk", "checks": status})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", utils.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
