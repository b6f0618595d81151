package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/profleet/fleettrack/internal/pkg/jwt"
	"github.com/profleet/fleettrack/internal/pkg/models"
	"github.com/profleet/fleettrack/internal/utils"
)

// Echo context keys set by JWTAuthMiddleware
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// TokenQueryParam lets browser websocket clients pass the token in the URL
const TokenQueryParam = "token"

const callerContextKey = "caller"

// JWTAuthMiddleware authenticates the bearer token (or the token query parameter) and
// stores the caller identity under ContextUserID and ContextUserRole
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  callerContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,query:" + TokenQueryParam,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtpkg.CallerFromToken(auth, config.Secret)
		},
		SuccessHandler: func(c echo.Context) {
			caller, _ := c.Get(callerContextKey).(models.Caller)
			c.Set(ContextUserID, caller.UserID)
			c.Set(ContextUserRole, caller.Role)
			SetUserID(c, caller.UserID)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}
			return utils.UnauthorizedResponse(c, "Invalid token")
		},
	})
}

// RequireRoles rejects callers whose role is not listed
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerFromContext(c)
			for _, role := range roles {
				if caller.Role == role {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "not permitted")
		}
	}
}

// CallerFromContext returns the identity set by JWTAuthMiddleware
func CallerFromContext(c echo.Context) models.Caller {
	userID, _ := c.Get(ContextUserID).(string)
	role, _ := c.Get(ContextUserRole).(string)
	return models.Caller{UserID: userID, Role: role}
}
