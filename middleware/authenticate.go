package middleware

import (
	"net/http"

	"farmigo/controllers"
	"farmigo/models"
	"farmigo/token"

	"github.com/gin-gonic/gin"
)

func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(context *gin.Context) {

		clientToken := context.Request.Header.Get("Authorization")
		if clientToken == "" {
			context.JSON(http.StatusUnauthorized,
				controllers.ErrorResponse{Error: "No authorization header provided"})
			context.Abort()
			return
		}
		claims, err := tokens.Validate(clientToken)
		if err != nil {
			context.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: err.Error()})
			context.Abort()
			return
		}

		context.Set("user_id", claims.UserID)
		context.Set("role", claims.Role)
		context.Next()
	}
}

// RequireRole gates a handler on the role claim set by Authenticate. Every
// role-restricted route goes through this single check.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(context *gin.Context) {
		value, ok := context.Get("role")
		if !ok {
			context.JSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden"})
			context.Abort()
			return
		}
		role, ok := value.(models.Role)
		if !ok {
			context.JSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden"})
			context.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				context.Next()
				return
			}
		}
		context.JSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden"})
		context.Abort()
	}
}
