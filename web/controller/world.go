package controller

import (
	"net/http"
	"strconv"

	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

// UpdateBossForm is the boss mutation body.
type UpdateBossForm struct {
	Defeated *bool `json:"defeated"`
}

// WorldController serves the world map. Reads are public; boss updates are
// admin only.
type WorldController struct {
	worldService service.WorldService
}

func NewWorldController(g *gin.RouterGroup, issuer *token.Issuer) *WorldController {
	a := &WorldController{}
	a.initRouter(g, issuer)
	return a
}

func (a *WorldController) initRouter(g *gin.RouterGroup, issuer *token.Issuer) {
	g.GET("/", a.get)
	g.PUT("/boss/:id", middleware.TokenAuth(issuer), middleware.RequireRole(model.RoleAdmin), a.updateBoss)
}

func (a *WorldController) get(c *gin.Context) {
	world, err := a.worldService.GetWorldMap()
	if err != nil {
		logger.Error("Get world map error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, world)
}

func (a *WorldController) updateBoss(c *gin.Context) {
	bossId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusNotFound, "Boss not found")
		return
	}

	var form UpdateBossForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Defeated == nil {
		jsonError(c, http.StatusBadRequest, "Defeated status must be a boolean")
		return
	}

	boss, err := a.worldService.SetBossDefeated(bossId, *form.Defeated)
	if err == service.ErrBossNotFound {
		jsonError(c, http.StatusNotFound, "Boss not found")
		return
	}
	if err != nil {
		logger.Error("Update boss status error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	logger.Infof("Boss %s status updated by %s", boss.Name, user.Username)

	c.JSON(http.StatusOK, gin.H{
		"message": "Boss status updated successfully",
		"boss":    boss,
	})
}
