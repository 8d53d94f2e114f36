package controller

import (
	"net/http"

	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

// CreateCharacterForm is the character creation body.
type CreateCharacterForm struct {
	Username       string `json:"username" binding:"required,min=3,max=30"`
	Race           string `json:"race" binding:"required,oneof=human oni fairy undead"`
	CharacterClass string `json:"characterClass" binding:"required,oneof=warrior mage thief exorcist"`
}

// RenameCharacterForm is the character update body; only the name is editable.
type RenameCharacterForm struct {
	Username string `json:"username" binding:"required,min=3"`
}

// CharacterController serves the character CRUD routes. Every route is
// token-authenticated and every row access is ownership-checked.
type CharacterController struct {
	characterService service.CharacterService
}

func NewCharacterController(g *gin.RouterGroup, issuer *token.Issuer) *CharacterController {
	a := &CharacterController{}
	a.initRouter(g, issuer)
	return a
}

func (a *CharacterController) initRouter(g *gin.RouterGroup, issuer *token.Issuer) {
	g.Use(middleware.TokenAuth(issuer))
	g.POST("/", a.create)
	g.GET("/", a.list)
	g.GET("/:id", a.get)
	g.PUT("/:id", a.rename)
	g.DELETE("/:id", a.delete)
}

func (a *CharacterController) create(c *gin.Context) {
	var form CreateCharacterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}

	user := middleware.GetAuthUser(c)
	character, err := a.characterService.Create(user.Id, form.Username, form.Race, form.CharacterClass)
	if err == service.ErrCharacterLimit {
		jsonError(c, http.StatusBadRequest, "Maximum character limit reached (3)")
		return
	}
	if err != nil {
		logger.Error("Character creation error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Character created successfully",
		"character": character,
	})
}

func (a *CharacterController) list(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	characters, err := a.characterService.ListByUser(user.Id)
	if err != nil {
		logger.Error("Get characters error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (a *CharacterController) get(c *gin.Context) {
	character, err := a.characterService.Get(c.Param("id"))
	if err == service.ErrCharacterNotFound {
		jsonError(c, http.StatusNotFound, "Character not found")
		return
	}
	if err != nil {
		logger.Error("Get character error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	if character.UserId != user.Id {
		jsonError(c, http.StatusForbidden, "Not authorized to access this character")
		return
	}

	c.JSON(http.StatusOK, character)
}

func (a *CharacterController) rename(c *gin.Context) {
	var form RenameCharacterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Valid username is required")
		return
	}

	character, err := a.characterService.Get(c.Param("id"))
	if err == service.ErrCharacterNotFound {
		jsonError(c, http.StatusNotFound, "Character not found")
		return
	}
	if err != nil {
		logger.Error("Update character error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	if character.UserId != user.Id {
		jsonError(c, http.StatusForbidden, "Not authorized to update this character")
		return
	}

	updated, err := a.characterService.Rename(character.Id, form.Username)
	if err != nil {
		logger.Error("Update character error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Character updated successfully",
		"character": updated,
	})
}

func (a *CharacterController) delete(c *gin.Context) {
	character, err := a.characterService.Get(c.Param("id"))
	if err == service.ErrCharacterNotFound {
		jsonError(c, http.StatusNotFound, "Character not found")
		return
	}
	if err != nil {
		logger.Error("Delete character error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	if character.UserId != user.Id {
		jsonError(c, http.StatusForbidden, "Not authorized to delete this character")
		return
	}

	if err := a.characterService.Delete(character.Id); err != nil {
		logger.Error("Delete character error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Character deleted successfully"})
}
