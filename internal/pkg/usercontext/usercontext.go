package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext is the session identity of the current request. Handlers take
// it from here instead of reading the session directly.
type UserContext struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	Token      string `json:"-"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// Anonymous is the context of a visitor without a valid session.
func Anonymous() UserContext {
	return UserContext{}
}

// CanCallAPI reports whether the context carries what the authenticated
// API endpoints need.
func (u UserContext) CanCallAPI() bool {
	return u.IsLoggedIn && u.UserID != "" && u.Token != ""
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(LocalsKey).(UserContext); ok {
		return ctx
	}
	return Anonymous()
}

// SetUserContext stores the user context for the rest of the request.
func SetUserContext(c *fiber.Ctx, u UserContext) {
	c.Locals(LocalsKey, u)
}
