// Package middleware wraps application operations with cross-cutting
// behaviour: operation IDs, logging, metrics and the session guard.
package middleware

import "context"

// Operation is one unit of application work, such as creating a ticket.
type Operation func(ctx context.Context) error

// Interceptor wraps an Operation. name identifies the operation in logs and
// metrics ("tickets.create").
type Interceptor func(name string, next Operation) Operation

// Chain composes interceptors; the first one is the outermost.
func Chain(interceptors ...Interceptor) Interceptor {
	return func(name string, next Operation) Operation {
		for i := len(interceptors) - 1; i >= 0; i-- {
			next = interceptors[i](name, next)
		}
		return next
	}
}
