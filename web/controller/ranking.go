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

// UpdateRankingForm is the leaderboard upsert body.
type UpdateRankingForm struct {
	Player string `json:"player"`
	Score  *int   `json:"score"`
}

// RankingController serves the leaderboards. Reads are public; writes are
// admin only.
type RankingController struct {
	rankingService service.RankingService
}

func NewRankingController(g *gin.RouterGroup, issuer *token.Issuer) *RankingController {
	a := &RankingController{}
	a.initRouter(g, issuer)
	return a
}

func (a *RankingController) initRouter(g *gin.RouterGroup, issuer *token.Issuer) {
	g.GET("/", a.list)
	g.PUT("/:type/:rank", middleware.TokenAuth(issuer), middleware.RequireRole(model.RoleAdmin), a.update)
}

func (a *RankingController) list(c *gin.Context) {
	rankings, err := a.rankingService.GetAll()
	if err != nil {
		logger.Error("Get rankings error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, rankings)
}

func (a *RankingController) update(c *gin.Context) {
	rankingType := c.Param("type")
	if rankingType != model.RankingHyakki && rankingType != model.RankingPvp {
		jsonError(c, http.StatusBadRequest, "Invalid ranking type")
		return
	}

	rank, err := strconv.Atoi(c.Param("rank"))
	if err != nil || rank < 1 {
		jsonError(c, http.StatusBadRequest, "Rank must be a positive integer")
		return
	}

	var form UpdateRankingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}
	if form.Player == "" {
		jsonError(c, http.StatusBadRequest, "Player name is required")
		return
	}
	if form.Score == nil || *form.Score < 0 {
		jsonError(c, http.StatusBadRequest, "Score must be a non-negative integer")
		return
	}

	ranking, err := a.rankingService.Upsert(rankingType, rank, form.Player, *form.Score)
	if err != nil {
		logger.Error("Update ranking error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	logger.Infof("Ranking updated by %s: %s rank %d", user.Username, rankingType, rank)

	c.JSON(http.StatusOK, gin.H{
		"message": "Ranking updated successfully",
		"ranking": ranking,
	})
}
