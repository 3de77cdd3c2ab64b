package handlers

import (
	userRepoPkg "reviewdesk/database/repository/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo      userRepoPkg.UserRepository
	AuthCache     *redis.Client
	SessionMaxAge int

	// Review endpoints
	SubmitReviewHandler    gin.HandlerFunc
	ReviewsMadeHandler     gin.HandlerFunc
	ReviewsReceivedHandler gin.HandlerFunc
	SwitchProfileHandler   gin.HandlerFunc
}
