package middleware

import (
	"context"
	"time"

	"github.com/mmynk/ticketapp/internal/models"
)

// OperationRecorder receives one observation per finished operation.
type OperationRecorder interface {
	RecordOperation(name, result string, duration time.Duration)
}

// Metrics returns an interceptor that reports each operation's result kind
// and duration to rec.
func Metrics(rec OperationRecorder) Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) error {
			start := time.Now()
			err := next(ctx)
			rec.RecordOperation(name, models.KindName(err), time.Since(start))
			return err
		}
	}
}
