// Package cache provides the Redis store for gin sessions.
package cache

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gorilla/securecookie"
	gorillasessions "github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const defaultMaxAge = 86400 // 24 hours, matches the session cap

// RedisStore stores sessions in Redis. Only the session id travels in the
// cookie; values are gob-encoded server side.
type RedisStore struct {
	client  *redis.Client
	Codecs  []securecookie.Codec
	options *sessions.Options
}

// NewRedisStore creates a new Redis store signing cookies with keyPairs.
func NewRedisStore(client *redis.Client, keyPairs ...[]byte) *RedisStore {
	rs := &RedisStore{
		client: client,
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		options: &sessions.Options{
			Path:   "/",
			MaxAge: defaultMaxAge,
		},
	}
	return rs
}

// Options sets the options for the store.
func (s *RedisStore) Options(opts sessions.Options) {
	s.options = &opts
}

// Get retrieves a session from the registry or Redis.
func (s *RedisStore) Get(r *http.Request, name string) (*gorillasessions.Session, error) {
	return gorillasessions.GetRegistry(r).Get(s, name)
}

// New creates a session, loading existing state when the request carries a
// decodable session cookie.
func (s *RedisStore) New(r *http.Request, name string) (*gorillasessions.Session, error) {
	session := gorillasessions.NewSession(s, name)
	session.Options = &gorillasessions.Options{
		Path:     s.options.Path,
		Domain:   s.options.Domain,
		MaxAge:   s.options.MaxAge,
		Secure:   s.options.Secure,
		HttpOnly: s.options.HttpOnly,
		SameSite: s.options.SameSite,
	}
	session.IsNew = true

	if c, errCookie := r.Cookie(name); errCookie == nil {
		err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...)
		if err == nil {
			if err = s.load(session); err == nil {
				session.IsNew = false
			}
			// Load failure falls through to a fresh session.
		}
		// Undecodable cookies (stale format) also fall through.
	}

	return session, nil
}

// Save writes a session to Redis and sets the cookie. MaxAge < 0 deletes it.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *gorillasessions.Session) error {
	if session.Options.MaxAge < 0 {
		if err := s.delete(session); err != nil {
			return err
		}
		http.SetCookie(w, s.newCookie(session, ""))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(
				securecookie.GenerateRandomKey(32),
			), "=")
	}

	if err := s.save(session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}

	http.SetCookie(w, s.newCookie(session, encoded))
	return nil
}

func (s *RedisStore) newCookie(session *gorillasessions.Session, value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     session.Name(),
		Value:    value,
		Path:     session.Options.Path,
		Domain:   session.Options.Domain,
		MaxAge:   session.Options.MaxAge,
		Secure:   session.Options.Secure,
		HttpOnly: session.Options.HttpOnly,
		SameSite: session.Options.SameSite,
	}
	if session.Options.MaxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second)
	}
	return cookie
}

// save gob-encodes session values; gob preserves the model.User type stored
// by the login flow.
func (s *RedisStore) save(session *gorillasessions.Session) error {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(session.Values); err != nil {
		return fmt.Errorf("failed to encode session values: %w", err)
	}

	maxAge := session.Options.MaxAge
	if maxAge == 0 {
		maxAge = s.options.MaxAge
	}

	key := fmt.Sprintf("session:%s", session.ID)
	return s.client.Set(context.Background(), key, buf.Bytes(), time.Duration(maxAge)*time.Second).Err()
}

func (s *RedisStore) load(session *gorillasessions.Session) error {
	key := fmt.Sprintf("session:%s", session.ID)
	data, err := s.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return fmt.Errorf("session not found")
	}
	if err != nil {
		return err
	}

	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&session.Values); err != nil {
		return fmt.Errorf("failed to decode session data: %w", err)
	}

	return nil
}

func (s *RedisStore) delete(session *gorillasessions.Session) error {
	key := fmt.Sprintf("session:%s", session.ID)
	return s.client.Del(context.Background(), key).Err()
}
