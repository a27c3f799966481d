package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/savrasov/soar_incident_api/internal/config"
	"github.com/sirupsen/logrus"
)

// BearerAuthMiddleware - middleware для необязательной аутентификации по
// bearer-токену. Запрос без заголовка Authorization (или с заголовком без
// префикса "Bearer ") проходит дальше: аутентификация в демо-API
// рекомендательная. Отклоняется только предъявленный неверный токен.
func BearerAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != cfg.APIToken {
			log.Warn("Invalid bearer token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer token"})
			return
		}

		c.Next()
	}
}
