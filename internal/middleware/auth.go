package middleware

import "github.com/labstack/echo/v4"

const (
	UserIDKey    = "user_id"
	guestUserID  = "guest"
	userIDHeader = "X-User-Id"
)

// BuyerMiddleware identifies the buyer from the X-User-Id header.
// later we can expand this to jwt auth or session auth
func BuyerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get(userIDHeader)
			if userID == "" {
				userID = guestUserID
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	if id, ok := c.Get(UserIDKey).(string); ok {
		return id
	}
	return guestUserID
}
