package middleware

import (
	"context"
	"time"

	"clinic-portal/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// CookieStore exposes the request cookies as the persistent token scope
type CookieStore struct {
	c *fiber.Ctx
}

func NewCookieStore(c *fiber.Ctx) CookieStore {
	return CookieStore{c: c}
}

func (s CookieStore) Get(_ context.Context, key string) (string, error) {
	v := s.c.Cookies(key)
	if v == "" {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s CookieStore) Set(_ context.Context, key, value string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s CookieStore) Remove(_ context.Context, key string) error {
	s.c.ClearCookie(key)
	return nil
}

// SessionStore exposes the server-side Fiber session as the session token scope
type SessionStore struct {
	sessions *session.Store
	c        *fiber.Ctx
}

func NewSessionStore(sessions *session.Store, c *fiber.Ctx) SessionStore {
	return SessionStore{sessions: sessions, c: c}
}

func (s SessionStore) Get(_ context.Context, key string) (string, error) {
	sess, err := s.sessions.Get(s.c)
	if err != nil {
		return "", err
	}
	v, ok := sess.Get(key).(string)
	if !ok || v == "" {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s SessionStore) Set(_ context.Context, key, value string) error {
	sess, err := s.sessions.Get(s.c)
	if err != nil {
		return err
	}
	sess.Set(key, value)
	return sess.Save()
}

func (s SessionStore) Remove(_ context.Context, key string) error {
	sess, err := s.sessions.Get(s.c)
	if err != nil {
		return err
	}
	sess.Delete(key)
	return sess.Save()
}
