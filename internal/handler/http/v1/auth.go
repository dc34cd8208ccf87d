package v1

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/radio_room_system/internal/config"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/sirupsen/logrus"
)

const fieldSessionKey = "field_session"

// APIKeyAuthMiddleware - middleware для аутентификации консоли по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				isValid = true
				break
			}
		}

		if !isValid {
			log.WithField("path", c.FullPath()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// FieldAuthMiddleware открывает полевую сессию по паре team/token из query.
// Сессия живет один запрос и закрывается после обработчика.
func FieldAuthMiddleware(room service.RadioRoom, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fs, err := room.Authorize(c.Request.Context(), c.Query("team"), c.Query("token"))
		switch {
		case errors.Is(err, service.ErrExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired", "expired": true})
			return
		case errors.Is(err, service.ErrDenied):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		case err != nil:
			log.WithError(err).Error("Field authorization failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		defer fs.Close()

		c.Set(fieldSessionKey, fs)
		c.Next()
	}
}

func fieldSession(c *gin.Context) *service.FieldSession {
	v, ok := c.Get(fieldSessionKey)
	if !ok {
		return nil
	}
	fs, _ := v.(*service.FieldSession)
	return fs
}
