package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/ticketapp/internal/models"
)

// Logging returns an interceptor that logs every operation.
// It logs the operation name, ID, user email, duration, and any error kind.
// User-caused errors are logged at Warn, everything else at Error.
//
// Place it outside RequireSession to log guard rejections, or inside to get
// the email on every line.
func Logging(logger *slog.Logger) Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) error {
			start := time.Now()

			err := next(ctx)

			attrs := []any{
				"operation", name,
				"operation_id", GetOperationID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if email := GetEmail(ctx); email != "" {
				attrs = append(attrs, "email", email)
			}

			if err != nil {
				var appErr *models.AppError
				if errors.As(err, &appErr) {
					logger.Warn("Operation rejected",
						append(attrs, "kind", models.KindName(err), "error", appErr.Message)...)
				} else {
					logger.Error("Operation failed", append(attrs, "error", err)...)
				}
				return err
			}

			logger.Debug("Operation ok", attrs...)
			return nil
		}
	}
}
