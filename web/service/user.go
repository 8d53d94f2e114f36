// Package service implements the business logic between the HTTP controllers
// and the database.
package service

import (
	"errors"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/util/crypto"
	"github.com/yukkurinet/hyakki-portal/web/oauth"

	"github.com/google/uuid"
)

var (
	// ErrEmailTaken signals a duplicate registration.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers unknown email, OAuth-only accounts and
	// wrong passwords alike. Callers must not distinguish them.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound means the referenced user row no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword rejects a profile password change with a bad current password.
	ErrWrongPassword = errors.New("current password is incorrect")
)

type UserService struct{}

// Register creates a local account. The email pre-check catches the common
// case; the unique index on email decides concurrent duplicates, surfacing
// the loser as ErrEmailTaken.
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleMember,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Infof("New user registered: %s", username)
	return user, nil
}

// Login authenticates a local account. All failure branches return the same
// error so the response cannot leak which one occurred.
func (s *UserService) Login(email, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		// Discord-only account, no local password to check.
		return nil, ErrInvalidCredentials
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	logger.Infof("User logged in: %s", user.Username)
	return user, nil
}

// GetByID resolves a user id to the current row.
func (s *UserService) GetByID(id string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertDiscordUser creates or refreshes the local account keyed by the
// Discord user id. Profile fields are resynced on every login: username
// always, email only when the provider supplied one, avatar only when a hash
// is present.
func (s *UserService) UpsertDiscordUser(profile *oauth.Profile) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("discord_id = ?", profile.Id).First(user).Error
	if database.IsNotFound(err) {
		email := profile.Email
		if email == "" {
			email = oauth.PlaceholderEmail(profile)
		}
		discordId := profile.Id
		user = &model.User{
			Id:        uuid.NewString(),
			Username:  profile.Username,
			Email:     email,
			DiscordId: &discordId,
			Role:      model.RoleMember,
		}
		if avatar := oauth.AvatarURL(profile); avatar != "" {
			user.Avatar = &avatar
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		logger.Infof("New user created via Discord: %s", user.Username)
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Username = profile.Username
	if profile.Email != "" {
		user.Email = profile.Email
	}
	if avatar := oauth.AvatarURL(profile); avatar != "" {
		user.Avatar = &avatar
	}
	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	logger.Infof("User updated via Discord: %s", user.Username)
	return user, nil
}

// UpdateProfile applies username/email edits and, when both password fields
// are present on a local account, a verified password change.
func (s *UserService) UpdateProfile(userId, username, email, currentPassword, newPassword string) (*model.User, error) {
	db := database.GetDB()

	user, err := s.GetByID(userId)
	if err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}

	if currentPassword != "" && newPassword != "" && user.PasswordHash != "" {
		if !crypto.CheckPasswordHash(user.PasswordHash, currentPassword) {
			return nil, ErrWrongPassword
		}
		hash, err := crypto.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := db.Save(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Infof("User profile updated: %s", user.Username)
	return user, nil
}

// UpdateAvatar points the user's avatar at an uploaded file.
func (s *UserService) UpdateAvatar(userId, avatarURL string) (*model.User, error) {
	db := database.GetDB()

	user, err := s.GetByID(userId)
	if err != nil {
		return nil, err
	}

	user.Avatar = &avatarURL
	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
