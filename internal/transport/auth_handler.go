package transport

import (
	"net/http"
	"time"

	"tuff-gaming/internal/middleware"
	"tuff-gaming/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CookieConfig controls the session cookies set on login
type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

// UserProfile is the public view of a user
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// AuthHandler handles registration and session endpoints
type AuthHandler struct {
	userService service.UserService
	cookies     CookieConfig
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService service.UserService, cookies CookieConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cookies:     cookies,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes. limiter guards login and
// registration; pass nil to disable it.
func (h *AuthHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
	r.Post("/logout", h.Logout)
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, UserProfile{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
	})
}

// Login authenticates the user and sets the session cookies
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, user, err := h.userService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	maxAge := int(h.cookies.MaxAge.Seconds())
	http.SetCookie(w, h.cookie(middleware.AuthCookieName, "Bearer "+token, true, maxAge))
	http.SetCookie(w, h.cookie(middleware.LoggedInCookieName, "true", false, maxAge))

	h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Login success"})
}

// Logout clears the session cookies
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, c := range []*http.Cookie{
		h.cookie(middleware.AuthCookieName, "", true, -1),
		h.cookie(middleware.LoggedInCookieName, "", false, -1),
	} {
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) cookie(name, value string, httpOnly bool, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
