package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/session"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
)

// UserContextMiddleware projects the session onto a UserContext for every
// request. A session only counts as logged in when the flag, the user id and
// the token are all present.
func UserContextMiddleware(c *fiber.Ctx) error {
	store := session.GetSessionStore()
	if store == nil {
		usercontext.SetUserContext(c, usercontext.Anonymous())
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		logger.L().Warn("failed to load session", zap.Error(err))
		usercontext.SetUserContext(c, usercontext.Anonymous())
		return c.Next()
	}

	loggedIn, _ := sess.Get(session.KeyLoggedIn).(bool)
	userID, _ := sess.Get(session.KeyUserID).(string)
	token, _ := sess.Get(session.KeyToken).(string)
	if !loggedIn || userID == "" || token == "" {
		usercontext.SetUserContext(c, usercontext.Anonymous())
		return c.Next()
	}

	username, _ := sess.Get(session.KeyUsername).(string)
	phone, _ := sess.Get(session.KeyPhone).(string)
	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		Phone:      phone,
		Token:      token,
		IsLoggedIn: true,
	})

	return c.Next()
}
