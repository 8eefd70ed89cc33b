package middleware

import "context"

// contextKey is a private type for request context keys.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey contextKey = "logger"
	userIDCtxKey contextKey = "userID"
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(string)
	return userID, ok && userID != ""
}
