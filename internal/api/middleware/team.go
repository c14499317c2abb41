package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/frcparts/components-api/internal/api/metrics"
	"github.com/frcparts/components-api/internal/core/auth"
	"github.com/frcparts/components-api/internal/core/domain"
)

// TeamScope rejects requests whose path parameter param names a team other
// than the authenticated user's. It must run after Auth.
func TeamScope(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if err := auth.CheckTeamAccess(user, c.Param(param)); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("team_path").Inc()
				return err
			}
			return next(c)
		}
	}
}
