package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/municipal_incidents/internal/auth"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/shenikar/municipal_incidents/internal/service"
	"github.com/sirupsen/logrus"
)

const actorKey = "actor"

// TokenValidator проверяет bearer-токен
type TokenValidator interface {
	Validate(tokenString string) (*auth.Claims, error)
}

// BearerAuthMiddleware - middleware для аутентификации по JWT; кладет пользователя в контекст
func BearerAuthMiddleware(tokens TokenValidator, directory service.DirectoryService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || token == authHeader || token == "" {
			log.Warn("Bearer token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			log.WithError(err).Warn("Invalid bearer token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		actor, err := directory.LoadActor(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				log.WithField("user_id", claims.UserID).Warn("Token refers to unknown user")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
				return
			}
			log.WithError(err).Error("Failed to load actor")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// CrewMemberMiddleware пропускает только участников или руководителей бригад
func CrewMemberMiddleware(directory service.DirectoryService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		if _, err := directory.CrewsForActor(c.Request.Context(), actor); err != nil {
			status, message := errorResponse(err)
			log.WithError(err).WithField("user_id", actor.UserID).Warn("Crew API access denied")
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// actorFrom достает пользователя, установленного BearerAuthMiddleware
func actorFrom(c *gin.Context) *models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(*models.Actor); ok {
			return actor
		}
	}
	return &models.Actor{}
}
