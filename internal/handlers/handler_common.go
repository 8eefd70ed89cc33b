package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/middleware"
)

// ErrorResponse is the error payload returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

const dateLayout = "2006-01-02"

// loggerFrom returns the request-scoped logger, falling back to the default.
func loggerFrom(c *gin.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// userIDFrom returns the authenticated user ID, aborting with 401 when absent.
func userIDFrom(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		loggerFrom(c).Error("User ID not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// respondError translates service errors into HTTP responses.
// Ledger corruption surfaces as a 500 with its message intact so operators
// can tell it apart from a generic failure.
func respondError(c *gin.Context, err error, fallback string) {
	logger := loggerFrom(c)

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidParent):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Access forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateCode),
		errors.Is(err, apperrors.ErrAlreadyPosted),
		errors.Is(err, apperrors.ErrImmutableEntry),
		errors.Is(err, apperrors.ErrAccountTypeLocked),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDataIntegrity):
		logger.Error("Data integrity violation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
			logger.Error("Application error", slog.String("error", err.Error()))
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// parseDateQuery parses a YYYY-MM-DD query parameter, defaulting when empty.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(dateLayout, raw)
}
