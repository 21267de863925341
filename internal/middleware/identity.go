package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"tuff-gaming/internal/auth"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

const (
	// UserIDHeader carries the authenticated user id to handlers.
	UserIDHeader = "x-userId"
	// AuthCookieName holds "Bearer <token>".
	AuthCookieName = "Authorization"
	// LoggedInCookieName is a script-readable session marker.
	LoggedInCookieName = "isLoggedIn"

	bearerPrefix = "Bearer "
	loginPath    = "/login"
)

// RouteClass decides how the identity middleware treats a request
type RouteClass int

const (
	RoutePassThrough RouteClass = iota
	RouteProtectedAPI
	RouteOptionalAPI
	RouteProtectedPage
	RouteOptionalPage
)

func (c RouteClass) String() string {
	switch c {
	case RouteProtectedAPI:
		return "protected-api"
	case RouteOptionalAPI:
		return "optional-api"
	case RouteProtectedPage:
		return "protected-page"
	case RouteOptionalPage:
		return "optional-page"
	default:
		return "pass-through"
	}
}

func (c RouteClass) protected() bool {
	return c == RouteProtectedAPI || c == RouteProtectedPage
}

type routeRule struct {
	prefix string
	exact  bool
	class  RouteClass
}

// routeTable is checked in order; the first match wins.
var routeTable = []routeRule{
	{prefix: "/api/wishlist", class: RouteProtectedAPI},
	{prefix: "/api/products", class: RouteOptionalAPI},
	{prefix: "/wishlist", class: RouteProtectedPage},
	{prefix: "/products", class: RouteOptionalPage},
	{prefix: "/", exact: true, class: RouteOptionalPage},
}

// ClassifyRoute maps a request path to its route class.
// A prefix matches the path itself or any path below it.
func ClassifyRoute(path string) RouteClass {
	for _, rule := range routeTable {
		if rule.exact {
			if path == rule.prefix {
				return rule.class
			}
			continue
		}
		if path == rule.prefix || strings.HasPrefix(path, rule.prefix+"/") {
			return rule.class
		}
	}
	return RoutePassThrough
}

// TokenVerifier verifies a session token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// IdentityMiddleware authenticates requests from the Authorization cookie.
// Protected routes reject anonymous callers with 401 (API) or a redirect to
// /login (pages). Optional routes continue anonymously when the token is
// missing or invalid. On success the user id is set as the x-userId request
// header and in the request context.
func IdentityMiddleware(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(UserIDHeader)

			class := ClassifyRoute(r.URL.Path)
			if class == RoutePassThrough {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := tokenFromCookie(r)
			if !ok {
				if class.protected() {
					logger.Debug("Missing session cookie",
						zap.String("path", r.URL.Path),
						zap.Stringer("route_class", class),
					)
					reject(w, r, class, "Authentication required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("Token verification failed",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.Stringer("route_class", class),
				)
				if class.protected() {
					reject(w, r, class, "Invalid token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, withUserID(r, claims.UserID))
		})
	}
}

// tokenFromCookie extracts the bearer token from the Authorization cookie.
// A cookie without the Bearer scheme is treated as absent.
func tokenFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	value := cookie.Value
	if strings.Contains(value, "%") {
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
	}

	if !strings.HasPrefix(value, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(value, bearerPrefix))
	return token, token != ""
}

func reject(w http.ResponseWriter, r *http.Request, class RouteClass, message string) {
	if class == RouteProtectedPage {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}
	RespondWithError(w, http.StatusUnauthorized, message)
}

func withUserID(r *http.Request, userID string) *http.Request {
	r.Header.Set(UserIDHeader, userID)
	ctx := context.WithValue(r.Context(), UserIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// CurrentUserID returns the authenticated user id, or "" for anonymous requests
func CurrentUserID(r *http.Request) string {
	return r.Header.Get(UserIDHeader)
}
