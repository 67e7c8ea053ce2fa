package http

import (
	"errors"
	"strings"
	"time"

	"otcdesk/internal/core/application/usecases/queries"
	"otcdesk/internal/core/domain/model/user"
	"otcdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const currentUserKey = "current_user"

// HTTPObserver records request latency by route template.
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// requireUser resolves the session from the auth_token cookie, or from a
// bearer token, and loads the user it names.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := sessionToken(c)
		if token == "" {
			return ErrUnauthorized
		}
		claims, err := s.sessions.Verify(token)
		if err != nil {
			return ErrUnauthorized
		}

		query, err := queries.NewGetUserQuery(claims.UserID, claims.Wallet)
		if err != nil {
			return ErrUnauthorized
		}
		view, err := s.handlers.GetUser.Handle(c.Request().Context(), query)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrUnauthorized
		}
		if err != nil {
			return err
		}

		c.Set(currentUserKey, view)
		return next(c)
	}
}

// requireAdmin must run after requireUser. The role is read from storage,
// never from the token.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUser(c).Role != string(user.RoleAdmin) {
			return ErrAdminRequired
		}
		return next(c)
	}
}

func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func currentUser(c echo.Context) queries.UserView {
	view, _ := c.Get(currentUserKey).(queries.UserView)
	return view
}

func callerOf(v queries.UserView) user.Caller {
	return user.NewCaller(v.ID, user.Role(v.Role))
}

// observe logs every request and feeds the latency histogram. Errors are
// rendered here so that the recorded status is the one sent.
func observe(logger *zap.Logger, observer HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			if observer != nil {
				observer.ObserveHTTPRequest(req.Method, route, status, elapsed)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("route", route),
				zap.String("uri", req.RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", elapsed),
				zap.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			if status >= 500 {
				logger.Error("request", fields...)
			} else {
				logger.Info("request", fields...)
			}
			return nil
		}
	}
}
