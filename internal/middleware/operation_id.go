package middleware

import (
	"context"

	"github.com/google/uuid"
)

// OperationID injects a unique ID into each operation's context.
// An ID already present (nested operations) is kept.
func OperationID() Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) error {
			if GetOperationID(ctx) == "" {
				ctx = context.WithValue(ctx, OperationIDKey, uuid.New().String())
			}
			return next(ctx)
		}
	}
}

// GetOperationID retrieves the operation ID from context.
func GetOperationID(ctx context.Context) string {
	if id, ok := ctx.Value(OperationIDKey).(string); ok {
		return id
	}
	return ""
}
