package controller

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/yukkurinet/hyakki-portal/config"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/util/random"
	"github.com/yukkurinet/hyakki-portal/web/entity"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20 // 5 MB

var allowedAvatarExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// UpdateProfileForm is the profile edit body. A password change needs both
// password fields.
type UpdateProfileForm struct {
	Username        string `json:"username" binding:"omitempty,min=3,max=30"`
	Email           string `json:"email" binding:"omitempty,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"omitempty,min=6"`
}

// UserController serves the profile routes.
type UserController struct {
	userService      service.UserService
	characterService service.CharacterService
	postService      service.PostService
}

func NewUserController(g *gin.RouterGroup, issuer *token.Issuer) *UserController {
	a := &UserController{}
	a.initRouter(g, issuer)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup, issuer *token.Issuer) {
	g.Use(middleware.TokenAuth(issuer))
	g.GET("/profile", a.getProfile)
	g.PUT("/profile", a.updateProfile)
	g.POST("/avatar", a.uploadAvatar)
}

func (a *UserController) getProfile(c *gin.Context) {
	user := middleware.GetAuthUser(c)

	characters, err := a.characterService.ListByUser(user.Id)
	if err != nil {
		logger.Error("Profile fetch error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	posts, err := a.postService.ListByAuthor(user.Id)
	if err != nil {
		logger.Error("Profile fetch error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": entity.Profile{
		Id:         user.Id,
		Username:   user.Username,
		Email:      user.Email,
		Avatar:     user.Avatar,
		DiscordId:  user.DiscordId,
		CreatedAt:  user.CreatedAt,
		Characters: characters,
		Posts:      posts,
	}})
}

func (a *UserController) updateProfile(c *gin.Context) {
	var form UpdateProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}
	if form.NewPassword != "" && form.CurrentPassword == "" {
		jsonError(c, http.StatusBadRequest, "Current password is required when setting a new password")
		return
	}

	user := middleware.GetAuthUser(c)
	updated, err := a.userService.UpdateProfile(user.Id, form.Username, form.Email, form.CurrentPassword, form.NewPassword)
	switch err {
	case nil:
	case service.ErrWrongPassword:
		jsonError(c, http.StatusBadRequest, "Current password is incorrect")
		return
	case service.ErrEmailTaken:
		jsonError(c, http.StatusBadRequest, "User already exists")
		return
	case service.ErrUserNotFound:
		jsonError(c, http.StatusNotFound, "User not found")
		return
	default:
		logger.Error("Profile update error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    entity.NewPublicUser(updated),
	})
}

// uploadAvatar stores an image under the uploads folder and points the
// profile at it.
func (a *UserController) uploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if file.Size > maxAvatarSize {
		jsonError(c, http.StatusBadRequest, "File too large (5MB limit)")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		jsonError(c, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	filename := fmt.Sprintf("avatar-%d-%s%s", time.Now().UnixMilli(), random.Seq(9), ext)
	dst := filepath.Join(config.GetUploadsFolder(), filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("Avatar upload error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	avatarURL := "/uploads/" + filename
	if _, err := a.userService.UpdateAvatar(user.Id, avatarURL); err != nil {
		logger.Error("Avatar update error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	logger.Infof("User avatar updated: %s", user.Username)
	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar uploaded successfully",
		"avatar":  avatarURL,
	})
}
