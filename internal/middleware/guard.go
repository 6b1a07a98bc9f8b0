package middleware

import (
	"context"
	"fmt"

	"github.com/mmynk/ticketapp/internal/models"
)

// Route is a screen path.
type Route string

const (
	RouteLanding   Route = "/"
	RouteLogin     Route = "/auth/login"
	RouteSignup    Route = "/auth/signup"
	RouteDashboard Route = "/dashboard"
	RouteTickets   Route = "/tickets"
)

var protectedRoutes = map[Route]bool{
	RouteDashboard: true,
	RouteTickets:   true,
}

var publicRoutes = map[Route]bool{
	RouteLanding: true,
	RouteLogin:   true,
	RouteSignup:  true,
}

// Protected reports whether r needs a session.
func (r Route) Protected() bool {
	return protectedRoutes[r]
}

// Guard decides which screen a navigation actually lands on.
type Guard struct {
	sessions SessionReader
}

// NewGuard creates a route guard backed by sessions.
func NewGuard(sessions SessionReader) *Guard {
	return &Guard{sessions: sessions}
}

// Resolve maps a requested path to the route to show. Unknown paths fall
// back to the landing page; protected paths without a session redirect to
// the login page. The returned session is nil when nobody is logged in.
func (g *Guard) Resolve(ctx context.Context, path string) (Route, *models.Session, error) {
	route := Route(path)
	if !publicRoutes[route] && !protectedRoutes[route] {
		route = RouteLanding
	}

	session, err := g.sessions.Current(ctx)
	if err != nil {
		return RouteLanding, nil, fmt.Errorf("failed to check session: %w", err)
	}
	if route.Protected() && session == nil {
		return RouteLogin, nil, nil
	}
	return route, session, nil
}
