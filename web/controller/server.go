package controller

import (
	"net/http"

	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/entity"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

// UpdateStatusForm is the server status mutation body; all fields optional.
type UpdateStatusForm struct {
	Online     *bool          `json:"online"`
	MaxPlayers *int           `json:"maxPlayers"`
	Event      *string        `json:"event"`
	Uptime     *entity.Uptime `json:"uptime"`
}

// ServerController serves the game-server status. Reads are public; writes
// are admin only.
type ServerController struct {
	statusService service.ServerStatusService
}

func NewServerController(g *gin.RouterGroup, issuer *token.Issuer) *ServerController {
	a := &ServerController{}
	a.initRouter(g, issuer)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup, issuer *token.Issuer) {
	g.GET("/", a.get)
	g.PUT("/", middleware.TokenAuth(issuer), middleware.RequireRole(model.RoleAdmin), a.update)
}

// get reports the current status with a freshly simulated player count.
func (a *ServerController) get(c *gin.Context) {
	status, err := a.statusService.RandomizePlayers()
	if err == service.ErrStatusNotFound {
		jsonError(c, http.StatusNotFound, "Server status not found")
		return
	}
	if err != nil {
		logger.Error("Get server status error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, entity.NewServerStatusView(status))
}

func (a *ServerController) update(c *gin.Context) {
	var form UpdateStatusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}
	if form.MaxPlayers != nil && *form.MaxPlayers < 1 {
		jsonError(c, http.StatusBadRequest, "Max players must be a positive integer")
		return
	}

	status, err := a.statusService.Update(service.StatusUpdate{
		Online:     form.Online,
		MaxPlayers: form.MaxPlayers,
		Event:      form.Event,
		Uptime:     form.Uptime,
	})
	if err == service.ErrStatusNotFound {
		jsonError(c, http.StatusNotFound, "Server status not found")
		return
	}
	if err != nil {
		logger.Error("Update server status error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	logger.Infof("Server status updated by %s", user.Username)

	c.JSON(http.StatusOK, gin.H{
		"message": "Server status updated successfully",
		"status":  entity.NewServerStatusView(status),
	})
}
