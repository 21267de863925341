package transport

import (
	"net/http"

	"tuff-gaming/internal/apperror"
	"tuff-gaming/internal/middleware"

	"go.uber.org/zap"
)

// MessageResponse is the body of action endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// writeError maps a tagged error to its status and {message} body.
// Untagged errors become a 500 without leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := apperror.As(err)
	if appErr == nil {
		appErr = apperror.Wrap(apperror.KindInternal, err, "internal server error")
	}
	status := appErr.Kind.Status()

	fields := []zap.Field{
		zap.Error(err),
		zap.String("kind", appErr.Kind.String()),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}

	if appErr.Kind == apperror.KindInternal {
		logger.Error("Request failed", fields...)
		middleware.RespondWithError(w, status, "internal server error")
		return
	}

	logger.Debug("Request rejected", fields...)

	if details, ok := appErr.Details.([]middleware.ValidationError); ok && len(details) > 0 {
		middleware.RespondWithJSON(w, status, middleware.ErrorResponse{Message: appErr.Message, Errors: details})
		return
	}
	middleware.RespondWithError(w, status, appErr.Message)
}
