package console

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// API is the console backend collaborator. Implementations perform the actual
// network calls; the stores only fold their outcomes.
//
// Logout and AdminLogout invalidate a session server side. The stores never
// call them: store logout is a local clear of identity, status, and vault
// slot. They are part of the backend surface for callers that also want the
// token dropped remotely.
type API interface {
	Signup(ctx context.Context, payload SignupPayload) (*Identity, error)
	Login(ctx context.Context, creds Credentials) (*Identity, error)
	Logout(ctx context.Context, token string) error
	AdminLogin(ctx context.Context, creds Credentials) (*Identity, error)
	AdminLogout(ctx context.Context, token string) error
	ListUsers(ctx context.Context, token string) ([]UserRecord, error)
	CreateUser(ctx context.Context, token string, payload CreateUserPayload) (*UserRecord, error)
	UpdateUser(ctx context.Context, token string, userID string, payload UpdateUserPayload) (*UserRecord, error)
	DeleteUser(ctx context.Context, token string, userID string) error
}

// Vault persists one identity per role so a restart can rehydrate a session
// without re-authenticating. Each store owns its role slot exclusively.
type Vault interface {
	Load(ctx context.Context, role Role) (*Identity, error)
	Store(ctx context.Context, role Role, identity *Identity) error
	Clear(ctx context.Context, role Role) error
}

// NotificationKind selects the presentation channel for a message.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notifier is the notification sink collaborator. It renders and dismisses
// messages independently of store internals.
type Notifier interface {
	Notify(kind NotificationKind, text string)
}

// IdentityPresence is the slice of a session store the route guards consume.
type IdentityPresence interface {
	Authenticated() bool
}

// StatusSource is the slice of a session store the notification bridge
// observes.
type StatusSource interface {
	Status() RequestStatus
	StatusVersion() uint64
	Reset()
	OnChange(fn func())
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CONSOLE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CONSOLE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CONSOLE "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type discardVault struct{}

func (discardVault) Load(context.Context, Role) (*Identity, error) { return nil, nil }
func (discardVault) Store(context.Context, Role, *Identity) error  { return nil }
func (discardVault) Clear(context.Context, Role) error             { return nil }
