package session

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/cache"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/env"
)

// Keys of the values kept in a user's session.
const (
	KeyLoggedIn = "logged_in"
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyPhone    = "phone"
	KeyToken    = "token"
)

var sessionStore *session.Store

// NewSessionStore creates the session store. Sessions live in Redis unless
// SESSION_STORAGE=memory.
func NewSessionStore() *session.Store {
	cfg := session.Config{
		CookieHTTPOnly: true,
		CookieSecure:   !env.IsDev(),
		CookieSameSite: "Lax",
		Expiration:     time.Hour * 1,
		KeyLookup:      "cookie:session_id",
	}

	if env.GetEnv("SESSION_STORAGE", "redis") != "memory" {
		cfg.Storage = newRedisStorage()
	}

	sessionStore = session.New(cfg)
	return sessionStore
}

// UseMemoryStore installs an in-memory store; meant for tests.
func UseMemoryStore() *session.Store {
	sessionStore = session.New(session.Config{KeyLookup: "cookie:session_id"})
	return sessionStore
}

func newRedisStorage() *redis.Storage {
	// Get Redis client configuration from existing cache setup
	cacheClient := cache.GetClient()
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	// Sessions use database 1, the cache client uses DB 0
	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
		Reset:    false,
	})
}

func GetSessionStore() *session.Store {
	return sessionStore
}

// Login stores the identity returned by the login API in the session.
func Login(c *fiber.Ctx, userID, username, phone, token string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}

	sess.Set(KeyLoggedIn, true)
	sess.Set(KeyUserID, userID)
	sess.Set(KeyUsername, username)
	sess.Set(KeyPhone, phone)
	sess.Set(KeyToken, token)
	return sess.Save()
}

// Logout destroys the user's session.
func Logout(c *fiber.Ctx) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	return sess.Destroy()
}

// SetSessionValue stores a key-value pair in the user's individual session
func SetSessionValue(c *fiber.Ctx, key string, value string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.Set(key, value)
	return sess.Save()
}
