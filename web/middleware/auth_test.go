package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() {
	os.Setenv("PORTAL_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	gin.SetMode(gin.TestMode)

	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	database.CloseDB()
	os.Remove("test.db")
}

func newAuthRouter(issuer *token.Issuer) *gin.Engine {
	engine := gin.New()
	engine.GET("/whoami", TokenAuth(issuer), func(c *gin.Context) {
		user := GetAuthUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return engine
}

func get(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTokenAuthMissingToken(t *testing.T) {
	setup()
	defer teardown()

	engine := newAuthRouter(token.NewIssuer("secret"))

	w := get(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Authentication required"}`, w.Body.String())

	// A malformed header is the same as no header.
	w = get(engine, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuthExpiredToken(t *testing.T) {
	setup()
	defer teardown()

	issuer := token.NewIssuer("secret")
	engine := newAuthRouter(issuer)

	tok, err := issuer.Issue("some-id", "someone", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	w := get(engine, "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Token expired"}`, w.Body.String())
}

func TestTokenAuthInvalidToken(t *testing.T) {
	setup()
	defer teardown()

	issuer := token.NewIssuer("secret")
	engine := newAuthRouter(issuer)

	other := token.NewIssuer("another-secret")
	tok, err := other.Issue("some-id", "someone", time.Hour)
	require.NoError(t, err)

	w := get(engine, "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Invalid token"}`, w.Body.String())

	w = get(engine, "Bearer not.a.token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Invalid token"}`, w.Body.String())
}

func TestTokenAuthDeletedUser(t *testing.T) {
	setup()
	defer teardown()

	issuer := token.NewIssuer("secret")
	engine := newAuthRouter(issuer)

	tok, err := issuer.Issue("no-such-user", "ghost", time.Hour)
	require.NoError(t, err)

	w := get(engine, "Bearer "+tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "User not found"}`, w.Body.String())
}

func TestTokenAuthSuccess(t *testing.T) {
	setup()
	defer teardown()

	issuer := token.NewIssuer("secret")
	engine := newAuthRouter(issuer)

	users := service.UserService{}
	user, err := users.Register("Authed", "authed@example.com", "password123")
	require.NoError(t, err)

	tok, err := issuer.Issue(user.Id, user.Username, time.Hour)
	require.NoError(t, err)

	w := get(engine, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username": "Authed"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	setup()
	defer teardown()

	issuer := token.NewIssuer("secret")
	engine := gin.New()
	engine.PUT("/admin-only", TokenAuth(issuer), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	users := service.UserService{}
	member, err := users.Register("Member", "member@example.com", "password123")
	require.NoError(t, err)
	admin, err := users.Login("demo@example.com", "password123")
	require.NoError(t, err)

	memberTok, err := issuer.Issue(member.Id, member.Username, time.Hour)
	require.NoError(t, err)
	adminTok, err := issuer.Issue(admin.Id, admin.Username, time.Hour)
	require.NoError(t, err)

	put := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/admin-only", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	w := put("Bearer " + memberTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "Not authorized"}`, w.Body.String())

	w = put("Bearer " + adminTok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = put("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
