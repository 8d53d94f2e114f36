// Package controller provides the HTTP request handlers for the portal API.
package controller

import (
	"net/http"
	"net/url"

	"github.com/yukkurinet/hyakki-portal/config"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/util/random"
	"github.com/yukkurinet/hyakki-portal/web/entity"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/oauth"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/session"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

// RegisterForm is the register request body.
type RegisterForm struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginForm is the login request body.
type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles registration, local login, the Discord OAuth
// handshake and the token-protected identity routes.
type AuthController struct {
	userService service.UserService
	issuer      *token.Issuer
	provider    oauth.Provider
}

// NewAuthController creates an AuthController and registers its routes.
func NewAuthController(g *gin.RouterGroup, issuer *token.Issuer, provider oauth.Provider) *AuthController {
	a := &AuthController{
		issuer:   issuer,
		provider: provider,
	}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.GET("/discord", a.discordStart)
	g.GET("/discord/callback", a.discordCallback)
	g.GET("/user", middleware.TokenAuth(a.issuer), a.currentUser)
	g.GET("/logout", a.logout)
}

func (a *AuthController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}

	user, err := a.userService.Register(form.Username, form.Email, form.Password)
	if err == service.ErrEmailTaken {
		jsonError(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		logger.Error("Registration error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	tok, err := a.issuer.Issue(user.Id, user.Username, config.TokenTTL)
	if err != nil {
		logger.Error("Token issue error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, entity.AuthResponse{
		Message: "User registered successfully",
		Token:   tok,
		User:    entity.NewPublicUser(user),
	})
}

func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}

	user, err := a.userService.Login(form.Email, form.Password)
	if err == service.ErrInvalidCredentials {
		logger.Warningf("failed login for %q from %s", form.Email, getRemoteIp(c))
		jsonError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		logger.Error("Login error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	tok, err := a.issuer.Issue(user.Id, user.Username, config.TokenTTL)
	if err != nil {
		logger.Error("Token issue error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Message: "Login successful",
		Token:   tok,
		User:    entity.NewPublicUser(user),
	})
}

// discordStart hands the browser to Discord with a fresh state parameter
// bound to the session.
func (a *AuthController) discordStart(c *gin.Context) {
	state := random.Seq(24)
	if err := session.SetOAuthState(c, state); err != nil {
		logger.Error("Unable to save OAuth state:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.Redirect(http.StatusFound, a.provider.AuthCodeURL(state))
}

// discordCallback finishes the handshake: state check, code exchange, local
// upsert, then a redirect to the frontend with a bearer token. Every failure
// path redirects to the login page with an error flag instead of surfacing
// the error to the browser.
func (a *AuthController) discordCallback(c *gin.Context) {
	failureURL := config.GetFrontendURL() + "/login?error=auth_failed"

	code := c.Query("code")
	state := c.Query("state")
	stored := session.TakeOAuthState(c)
	if code == "" || stored == "" || state != stored {
		logger.Warning("Discord callback rejected: missing code or state mismatch")
		c.Redirect(http.StatusFound, failureURL)
		return
	}

	profile, err := a.provider.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.Error("Discord callback error:", err)
		c.Redirect(http.StatusFound, failureURL)
		return
	}

	user, err := a.userService.UpsertDiscordUser(profile)
	if err != nil {
		logger.Error("Discord upsert error:", err)
		c.Redirect(http.StatusFound, failureURL)
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
	} else if err := session.SetMaxAge(c, int(config.SessionMaxAge.Seconds())); err != nil {
		logger.Warning("Unable to set session lifetime:", err)
	}

	tok, err := a.issuer.Issue(user.Id, user.Username, config.TokenTTL)
	if err != nil {
		logger.Error("Token issue error:", err)
		c.Redirect(http.StatusFound, failureURL)
		return
	}

	logger.Infof("User authenticated via Discord: %s", user.Username)
	c.Redirect(http.StatusFound, config.GetFrontendURL()+"/auth-callback?token="+url.QueryEscape(tok))
}

// currentUser returns the token holder's fresh user record.
func (a *AuthController) currentUser(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	if user == nil {
		jsonError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": entity.NewPublicUser(user)})
}

// logout invalidates the server-side session. Bearer tokens have no
// revocation; clients discard them.
func (a *AuthController) logout(c *gin.Context) {
	var username string
	if session.IsLogin(c) {
		username = session.GetLoginUser(c).Username
	}
	if err := session.ClearSession(c); err != nil {
		logger.Error("Logout error:", err)
		jsonError(c, http.StatusInternalServerError, "Logout failed")
		return
	}
	if username != "" {
		logger.Infof("%s logged out successfully", username)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
