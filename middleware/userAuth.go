package middleware

import (
	"errors"
	"net/http"
	"strings"

	userRepo "reviewdesk/database/repository/user"
	"reviewdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// RevokedTokenPrefix marks token hashes that must be refused before they expire.
const RevokedTokenPrefix = utils.AuthCachePrefix + "revoked:"

// CodeUnauthorized is the error code of every rejected bearer token.
const CodeUnauthorized = "auth.unauthorized"

func abortUnauthorized(c *gin.Context, msg string) {
	utils.AbortWithError(c, http.StatusUnauthorized, utils.ErrorResponse{Code: CodeUnauthorized, Message: msg})
}

// JWTAuthUserMiddleware authenticates the bearer token and stores the caller's ID under
// "userID". Known users are cached in authCache; a nil authCache falls back to the database.
func JWTAuthUserMiddleware(userRepo userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := utils.GetLogger()

		// Retrieve token from header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Insufficient authorization")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "Insufficient authorization")
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			abortUnauthorized(c, "Insufficient authorization")
			return
		}

		tokenHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		if authCache != nil {
			revoked, err := authCache.Exists(ctx, RevokedTokenPrefix+tokenHash).Result()
			if err == nil && revoked > 0 {
				abortUnauthorized(c, "Token revoked")
				return
			}

			cached, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && cached == userID {
				c.Set("userID", userID)
				c.Next()
				return
			} else if err != nil && !errors.Is(err, redis.Nil) {
				logger.Warn("Auth cache unavailable, falling back to DB lookup", zap.Error(err))
			}
		}

		// Cache miss: Query the database.
		usr, err := userRepo.GetByIDWithProjection(ctx, userID, bson.M{"id": 1})
		if err != nil || usr == nil {
			abortUnauthorized(c, "Authentication error")
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, userID, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// CurrentUserID returns the ID stored by JWTAuthUserMiddleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
