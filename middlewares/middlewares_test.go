package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(required ...models.Role) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), RequireRole(required...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := protectedRouter(models.RoleCustomer)
	w := doGet(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	r := protectedRouter(models.RoleCustomer)
	w := doGet(r, "/protected", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	token, err := utils.GenerateToken(1, models.RolePartner)
	assert.NoError(t, err)

	r := protectedRouter(models.RolePartner)
	w := doGet(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	token, err := utils.GenerateToken(1, models.RoleCustomer)
	assert.NoError(t, err)

	r := protectedRouter(models.RolePartner)
	w := doGet(r, "/protected", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAlwaysAdmitsAdmin(t *testing.T) {
	token, err := utils.GenerateToken(1, models.RoleAdmin)
	assert.NoError(t, err)

	r := protectedRouter(models.RolePartner)
	w := doGet(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebSocketAuthMiddlewareReadsQueryToken(t *testing.T) {
	token, err := utils.GenerateToken(7, models.RoleCustomer)
	assert.NoError(t, err)

	r := gin.New()
	r.GET("/ws", WebSocketAuthMiddleware(), func(c *gin.Context) {
		id, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	w := doGet(r, "/ws?token="+token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/ws", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIPRateLimiterBlocksAfterLimit(t *testing.T) {
	r := gin.New()
	limiter := NewRateLimiter(3, 60)
	r.GET("/restaurants", limiter.RateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := doGet(r, "/restaurants", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := doGet(r, "/restaurants", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestStrictRateLimiterCutsOffAfterBurst(t *testing.T) {
	r := gin.New()
	r.POST("/auth/login", NewStrictRateLimiter(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var limited bool
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited)
}
