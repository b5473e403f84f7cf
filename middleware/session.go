package middleware

import (
	"strconv"
	"time"

	"traintrack/config"
	"traintrack/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Session keys written at login and read by every guarded handler.
const (
	SessionUserKey = "UserId"
	SessionRoleKey = "role"
)

// Store is the global session store (cookie id -> server-side bag).
var Store *session.Store

// InitSessionStore configures the session store with the idle timeout from
// config. Must run after config.LoadConfig.
func InitSessionStore() {
	Store = session.New(session.Config{
		Expiration:     time.Duration(config.AppConfig.SessionIdleMinutes) * time.Minute,
		KeyLookup:      "cookie:traintrack_session",
		CookieHTTPOnly: true,
		KeyGenerator:   uuid.NewString,
	})
}

// SessionValues returns the raw UserId and role strings from the caller's
// session bag. ok is false when no session cookie resolves to a bag.
func SessionValues(c *fiber.Ctx) (userID, role string, ok bool) {
	sess, err := Store.Get(c)
	if err != nil {
		return "", "", false
	}
	userID, _ = sess.Get(SessionUserKey).(string)
	role, _ = sess.Get(SessionRoleKey).(string)
	return userID, role, true
}

// Authenticate resolves the caller to an employee id and role. It fails when
// either session key is absent or the stored id does not parse as a positive
// integer.
func Authenticate(c *fiber.Ctx) (uint, string, bool) {
	userID, role, ok := SessionValues(c)
	if !ok || userID == "" || role == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(userID, 10, 32)
	if err != nil || id == 0 {
		return 0, "", false
	}
	return uint(id), role, true
}

// AuthRequired rejects callers without a valid session and stores the
// employee id and role in the request context for the handler.
func AuthRequired(c *fiber.Ctx) error {
	id, role, ok := Authenticate(c)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "You are not logged in!", nil)
	}
	c.Locals("employeeId", id)
	c.Locals("role", role)
	return c.Next()
}

// AdminRequired rejects callers without a valid session (401) or with a role
// other than admin (403). Exact string compare, no role hierarchy.
func AdminRequired(c *fiber.Ctx) error {
	id, role, ok := Authenticate(c)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "You are not logged in!", nil)
	}
	if role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "You are not allowed to change the details!", nil)
	}
	c.Locals("employeeId", id)
	c.Locals("role", role)
	return c.Next()
}

// WriteSession records the authenticated employee in the session bag at login.
func WriteSession(c *fiber.Ctx, userID uint, role string) error {
	sess, err := Store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(SessionUserKey, strconv.FormatUint(uint64(userID), 10))
	sess.Set(SessionRoleKey, role)
	return sess.Save()
}

// ClearSession destroys the caller's session bag at logout.
func ClearSession(c *fiber.Ctx) error {
	sess, err := Store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
