package service

import (
	"errors"
	"time"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/util/common"
	"github.com/yukkurinet/hyakki-portal/web/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostService struct{}

// List returns all posts, newest first, formatted for display.
func (s *PostService) List() ([]entity.PostView, error) {
	db := database.GetDB()

	posts := make([]model.Post, 0)
	err := db.Preload("Author").Preload("LikedBy").
		Order("timestamp desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	views := make([]entity.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i]))
	}
	return views, nil
}

func newPostView(post *model.Post) entity.PostView {
	userLiked := make([]string, 0, len(post.LikedBy))
	for _, u := range post.LikedBy {
		userLiked = append(userLiked, u.Id)
	}

	view := entity.PostView{
		Id:          post.Id,
		AuthorId:    post.AuthorId,
		Content:     post.Content,
		Timestamp:   post.Timestamp.UTC().Format(time.RFC3339),
		DisplayTime: common.FormatRelativeTime(post.Timestamp),
		Likes:       post.Likes,
		UserLiked:   userLiked,
	}
	if post.Author != nil {
		view.Author = post.Author.Username
		view.AuthorAvatar = post.Author.Avatar
	}
	return view
}

// Create stores a new post by the given author.
func (s *PostService) Create(author *model.User, content string) (*entity.PostView, error) {
	db := database.GetDB()

	post := &model.Post{
		Id:        uuid.NewString(),
		Content:   content,
		AuthorId:  author.Id,
		Timestamp: time.Now(),
	}
	if err := db.Create(post).Error; err != nil {
		return nil, err
	}

	logger.Infof("New post created by %s", author.Username)

	post.Author = author
	view := newPostView(post)
	return &view, nil
}

func (s *PostService) Get(id string) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{}
	err := db.Where("id = ?", id).First(post).Error
	if database.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike flips the user's like on a post and returns the new count and
// state. Read-then-write without optimistic locking: concurrent toggles from
// the same user are last-write-wins.
func (s *PostService) ToggleLike(postId, userId string) (likes int, liked bool, err error) {
	db := database.GetDB()

	post, err := s.Get(postId)
	if err != nil {
		return 0, false, err
	}

	var likeCount int64
	err = db.Table("post_likes").
		Where("post_id = ? AND user_id = ?", postId, userId).
		Count(&likeCount).Error
	if err != nil {
		return 0, false, err
	}

	if likeCount > 0 {
		err = db.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postId, userId).Error
		if err != nil {
			return 0, false, err
		}
		err = db.Model(post).UpdateColumn("likes", gorm.Expr("likes - 1")).Error
		if err != nil {
			return 0, false, err
		}
		logger.Infof("User %s unliked post %s", userId, postId)
		return post.Likes - 1, false, nil
	}

	err = db.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", postId, userId).Error
	if err != nil {
		return 0, false, err
	}
	err = db.Model(post).UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	if err != nil {
		return 0, false, err
	}
	logger.Infof("User %s liked post %s", userId, postId)
	return post.Likes + 1, true, nil
}

// Delete removes a post together with its like rows. The join table carries a
// foreign key to posts, so both go in one transaction.
func (s *PostService) Delete(id string) error {
	post, err := s.Get(id)
	if err != nil {
		return err
	}
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_likes WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// ListByAuthor returns a user's own posts for the profile page.
func (s *PostService) ListByAuthor(userId string) ([]entity.ProfilePost, error) {
	db := database.GetDB()

	posts := make([]model.Post, 0)
	err := db.Where("author_id = ?", userId).
		Order("timestamp desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	formatted := make([]entity.ProfilePost, 0, len(posts))
	for _, post := range posts {
		formatted = append(formatted, entity.ProfilePost{
			Post:        post,
			DisplayTime: common.FormatRelativeTime(post.Timestamp),
		})
	}
	return formatted, nil
}
