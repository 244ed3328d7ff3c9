package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"farmigo/models"
	"farmigo/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	return w, c
}

func TestAuthenticate(t *testing.T) {
	tokens := token.NewManager("test-secret", 50)

	t.Run("missing header", func(t *testing.T) {
		w, c := testContext(t)

		Authenticate(tokens)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w, c := testContext(t)
		c.Request.Header.Set("Authorization", "garbage")

		Authenticate(tokens)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token sets identity and role", func(t *testing.T) {
		signed, err := tokens.Generate(models.User{ID: 9, Role: models.RoleAdmin})
		require.NoError(t, err)

		_, c := testContext(t)
		c.Request.Header.Set("Authorization", signed)

		Authenticate(tokens)(c)

		assert.False(t, c.IsAborted())
		assert.Equal(t, uint(9), c.MustGet("user_id"))
		assert.Equal(t, models.RoleAdmin, c.MustGet("role"))
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("missing role claim", func(t *testing.T) {
		w, c := testContext(t)

		RequireRole(models.RoleAdmin)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		w, c := testContext(t)
		c.Set("role", models.RoleFarmer)

		RequireRole(models.RoleCustomer, models.RoleAdmin)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())
	})

	t.Run("matching role passes through", func(t *testing.T) {
		_, c := testContext(t)
		c.Set("role", models.RoleAdmin)

		RequireRole(models.RoleCustomer, models.RoleAdmin)(c)

		assert.False(t, c.IsAborted())
	})
}
