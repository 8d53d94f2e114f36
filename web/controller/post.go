package controller

import (
	"net/http"

	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/middleware"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

// CreatePostForm is the post creation body.
type CreatePostForm struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// PostController serves the forum routes. Reading is public; writing needs a
// token.
type PostController struct {
	postService service.PostService
}

func NewPostController(g *gin.RouterGroup, issuer *token.Issuer) *PostController {
	a := &PostController{}
	a.initRouter(g, issuer)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup, issuer *token.Issuer) {
	g.GET("/", a.list)

	auth := g.Group("", middleware.TokenAuth(issuer))
	auth.POST("/", a.create)
	auth.POST("/:id/like", a.toggleLike)
	auth.DELETE("/:id", a.delete)
}

func (a *PostController) list(c *gin.Context) {
	posts, err := a.postService.List()
	if err != nil {
		logger.Error("Get posts error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *PostController) create(c *gin.Context) {
	var form CreatePostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonValidationError(c, err)
		return
	}

	user := middleware.GetAuthUser(c)
	post, err := a.postService.Create(user, form.Content)
	if err != nil {
		logger.Error("Post creation error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (a *PostController) toggleLike(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	likes, liked, err := a.postService.ToggleLike(c.Param("id"), user.Id)
	if err == service.ErrPostNotFound {
		jsonError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		logger.Error("Post like error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	message := "Post liked"
	if !liked {
		message = "Post unliked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"likes":     likes,
		"userLiked": liked,
	})
}

func (a *PostController) delete(c *gin.Context) {
	post, err := a.postService.Get(c.Param("id"))
	if err == service.ErrPostNotFound {
		jsonError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		logger.Error("Post deletion error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := middleware.GetAuthUser(c)
	if post.AuthorId != user.Id {
		jsonError(c, http.StatusForbidden, "Not authorized to delete this post")
		return
	}

	if err := a.postService.Delete(post.Id); err != nil {
		logger.Error("Post deletion error:", err)
		jsonError(c, http.StatusInternalServerError, "Server error")
		return
	}

	logger.Infof("Post %s deleted by %s", post.Id, user.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
