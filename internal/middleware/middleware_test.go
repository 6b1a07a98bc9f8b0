package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mmynk/ticketapp/internal/models"
)

type fakeSessions struct {
	session *models.Session
	err     error
}

func (f *fakeSessions) Current(context.Context) (*models.Session, error) {
	return f.session, f.err
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(label string) Interceptor {
		return func(name string, next Operation) Operation {
			return func(ctx context.Context) error {
				order = append(order, label+":"+name)
				return next(ctx)
			}
		}
	}

	op := Chain(tag("outer"), tag("inner"))("op", func(context.Context) error {
		order = append(order, "run")
		return nil
	})
	if err := op(context.Background()); err != nil {
		t.Fatalf("op failed: %v", err)
	}

	want := "outer:op,inner:op,run"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestRequireSession(t *testing.T) {
	t.Run("no session is rejected", func(t *testing.T) {
		ran := false
		op := RequireSession(&fakeSessions{})("tickets.list", func(context.Context) error {
			ran = true
			return nil
		})
		err := op(context.Background())
		if !errors.Is(err, models.ErrAuth) {
			t.Fatalf("expected auth error, got %v", err)
		}
		if ran {
			t.Error("operation must not run without a session")
		}
	})

	t.Run("session is passed in context", func(t *testing.T) {
		var email string
		op := RequireSession(&fakeSessions{session: &models.Session{Email: "a@x.com"}})("tickets.list",
			func(ctx context.Context) error {
				email = GetEmail(ctx)
				return nil
			})
		if err := op(context.Background()); err != nil {
			t.Fatalf("op failed: %v", err)
		}
		if email != "a@x.com" {
			t.Errorf("email in context = %q", email)
		}
	})

	t.Run("storage failure is not an auth error", func(t *testing.T) {
		op := RequireSession(&fakeSessions{err: errors.New("disk gone")})("x", func(context.Context) error { return nil })
		err := op(context.Background())
		if err == nil || errors.Is(err, models.ErrAuth) {
			t.Errorf("expected wrapped storage error, got %v", err)
		}
	})
}

func TestGuardResolve(t *testing.T) {
	ctx := context.Background()
	loggedIn := NewGuard(&fakeSessions{session: &models.Session{Email: "a@x.com"}})
	loggedOut := NewGuard(&fakeSessions{})

	tests := []struct {
		name  string
		guard *Guard
		path  string
		want  Route
	}{
		{"public landing", loggedOut, "/", RouteLanding},
		{"public login", loggedOut, "/auth/login", RouteLogin},
		{"public signup", loggedOut, "/auth/signup", RouteSignup},
		{"dashboard without session", loggedOut, "/dashboard", RouteLogin},
		{"tickets without session", loggedOut, "/tickets", RouteLogin},
		{"dashboard with session", loggedIn, "/dashboard", RouteDashboard},
		{"tickets with session", loggedIn, "/tickets", RouteTickets},
		{"unknown path falls back", loggedIn, "/nope", RouteLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := tt.guard.Resolve(ctx, tt.path)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestOperationID(t *testing.T) {
	var first, nested string
	inner := OperationID()("inner", func(ctx context.Context) error {
		nested = GetOperationID(ctx)
		return nil
	})
	outer := OperationID()("outer", func(ctx context.Context) error {
		first = GetOperationID(ctx)
		return inner(ctx)
	})

	if err := outer(context.Background()); err != nil {
		t.Fatalf("op failed: %v", err)
	}
	if first == "" {
		t.Fatal("expected an operation id")
	}
	if nested != first {
		t.Errorf("nested operation got %q, want %q", nested, first)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("domain error logs at warn with kind", func(t *testing.T) {
		buf.Reset()
		op := Logging(logger)("tickets.delete", func(context.Context) error {
			return models.NewTicketNotFoundError(7)
		})
		op(context.Background())

		out := buf.String()
		if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "kind=not_found") {
			t.Errorf("unexpected log line: %s", out)
		}
	})

	t.Run("internal error logs at error", func(t *testing.T) {
		buf.Reset()
		op := Logging(logger)("tickets.list", func(context.Context) error {
			return errors.New("boom")
		})
		op(context.Background())

		if !strings.Contains(buf.String(), "level=ERROR") {
			t.Errorf("unexpected log line: %s", buf.String())
		}
	})

	t.Run("success logs at debug with email", func(t *testing.T) {
		buf.Reset()
		ctx := WithSession(context.Background(), &models.Session{Email: "a@x.com"})
		op := Logging(logger)("tickets.list", func(context.Context) error { return nil })
		op(ctx)

		out := buf.String()
		if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "email=a@x.com") {
			t.Errorf("unexpected log line: %s", out)
		}
	})
}
