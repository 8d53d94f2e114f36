// Package session wraps the gin session with typed helpers for the login
// state kept across the OAuth round trip.
package session

import (
	"encoding/gob"

	"github.com/yukkurinet/hyakki-portal/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUser  = "LOGIN_USER"
	oauthState = "OAUTH_STATE"
)

func init() {
	gob.Register(model.User{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUser, *user)
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// SetOAuthState stores the state parameter for the in-flight OAuth handshake.
func SetOAuthState(c *gin.Context, state string) error {
	s := sessions.Default(c)
	s.Set(oauthState, state)
	return s.Save()
}

// TakeOAuthState returns and clears the stored state. Single use: a replayed
// callback finds nothing.
func TakeOAuthState(c *gin.Context) string {
	s := sessions.Default(c)
	obj := s.Get(oauthState)
	if obj == nil {
		return ""
	}
	s.Delete(oauthState)
	_ = s.Save()
	state, _ := obj.(string)
	return state
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
