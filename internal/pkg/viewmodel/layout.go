package viewmodel

import "github.com/gofiber/fiber/v2"

type Layout struct {
	Title      string
	Page       string
	IsLoggedIn bool
	Username   string
	CSRF       string
	Msg        fiber.Map
}

// Alert is the message of a flash map, if any.
func (l Layout) Alert() string {
	if l.Msg == nil {
		return ""
	}
	if m, ok := l.Msg["message"].(string); ok {
		return m
	}
	return ""
}

// AlertType is "success", "error" or "info".
func (l Layout) AlertType() string {
	if l.Msg == nil {
		return ""
	}
	if t, ok := l.Msg["type"].(string); ok {
		return t
	}
	return "info"
}
