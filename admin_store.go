package console

import (
	"context"
)

// AdminStore owns the administrator identity plus the user roster and its
// CRUD lifecycle. It mirrors SessionStore for the session operations, scoped
// to its own vault slot; the two sessions are fully independent.
type AdminStore struct {
	core
	api   API
	vault Vault
	admin *Identity
	users []UserRecord
}

type AdminStoreOption func(*AdminStore)

// WithAdminLogger overrides the logger used by the store.
func WithAdminLogger(l Logger) AdminStoreOption {
	return func(a *AdminStore) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithAdminVault sets the persisted storage slot for the admin identity.
func WithAdminVault(v Vault) AdminStoreOption {
	return func(a *AdminStore) {
		if v != nil {
			a.vault = v
		}
	}
}

// NewAdminStore builds the admin session store and rehydrates any persisted
// admin identity from the vault.
func NewAdminStore(api API, opts ...AdminStoreOption) *AdminStore {
	if api == nil {
		panic("Missing API client in admin store...")
	}

	a := &AdminStore{api: api, vault: discardVault{}}
	a.logger = defLogger{}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	a.rehydrate()
	return a
}

func (a *AdminStore) rehydrate() {
	identity, err := a.vault.Load(context.Background(), RoleAdmin)
	if err != nil {
		a.logger.Error("admin session rehydrate: %v", err)
		return
	}
	if identity == nil {
		return
	}
	if TokenExpired(identity.Token) {
		a.logger.Info("admin session rehydrate: stored token expired, discarding")
		if err := a.vault.Clear(context.Background(), RoleAdmin); err != nil {
			a.logger.Error("admin session clear: %v", err)
		}
		return
	}
	a.admin = identity
}

// Login authenticates with the admin portal.
func (a *AdminStore) Login(ctx context.Context, creds Credentials) error {
	return a.run(ctx, "admin.login", "Login successful", func(ctx context.Context) (func(), error) {
		identity, err := a.api.AdminLogin(ctx, creds)
		if err != nil {
			return nil, err
		}
		identity.Role = RoleAdmin
		a.persist(ctx, identity)
		return func() { a.admin = identity }, nil
	})
}

// Logout clears the admin identity, the roster, the status, and the vault
// slot. The roster is scoped to the admin session and does not outlive it.
func (a *AdminStore) Logout(ctx context.Context) {
	a.mu.Lock()
	a.admin = nil
	a.users = nil
	a.status = RequestStatus{}
	a.mu.Unlock()

	if err := a.vault.Clear(ctx, RoleAdmin); err != nil {
		a.logger.Error("admin session clear: %v", err)
	}

	a.logger.Debug("admin.logout: identity and roster cleared")
	a.changed()
}

// Current returns a copy of the signed-in admin identity, or nil.
func (a *AdminStore) Current() *Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.admin == nil {
		return nil
	}
	identity := *a.admin
	return &identity
}

// Authenticated reports identity presence for the route guards.
func (a *AdminStore) Authenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admin != nil
}

// Users returns a snapshot of the roster in fetch/insertion order.
func (a *AdminStore) Users() []UserRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]UserRecord, len(a.users))
	copy(out, a.users)
	return out
}

// RefreshDue reports whether the dashboard should refetch the roster: an
// admin is present and no request is pending or waiting to be acknowledged.
func (a *AdminStore) RefreshDue() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admin != nil && a.status.Idle()
}

// FetchUsers replaces the whole roster with the fetched list. Success is
// silent: routine refetches must not spam the notification sink.
func (a *AdminStore) FetchUsers(ctx context.Context) error {
	token := a.token()
	return a.run(ctx, "admin.users.fetch", "", func(ctx context.Context) (func(), error) {
		list, err := a.api.ListUsers(ctx, token)
		if err != nil {
			return nil, err
		}
		return func() {
			a.users = append([]UserRecord(nil), list...)
		}, nil
	})
}

// CreateUser appends the server-returned record to the roster on success; on
// rejection the roster is unchanged.
func (a *AdminStore) CreateUser(ctx context.Context, payload CreateUserPayload) error {
	token := a.token()
	return a.run(ctx, "admin.users.create", "User created successfully", func(ctx context.Context) (func(), error) {
		record, err := a.api.CreateUser(ctx, token, payload)
		if err != nil {
			return nil, err
		}
		return func() {
			// The roster never holds two records with the same ID; a
			// duplicate response replaces the existing entry in place.
			if i := a.indexOf(record.ID); i >= 0 {
				a.users[i] = *record
				return
			}
			a.users = append(a.users, *record)
		}, nil
	})
}

// UpdateUser merges the server-returned fields into the matching roster
// entry in place. A stale ID (no matching entry) leaves the roster untouched
// while still reporting the server's own outcome.
func (a *AdminStore) UpdateUser(ctx context.Context, userID string, payload UpdateUserPayload) error {
	token := a.token()
	return a.run(ctx, "admin.users.update", "User updated successfully", func(ctx context.Context) (func(), error) {
		record, err := a.api.UpdateUser(ctx, token, userID, payload)
		if err != nil {
			return nil, err
		}
		return func() {
			if i := a.indexOf(userID); i >= 0 && record != nil {
				a.users[i].merge(*record)
			}
		}, nil
	})
}

// DeleteUser removes the matching entry by ID on success; on rejection the
// roster is unchanged. Confirmation prompts are a UI-layer concern.
func (a *AdminStore) DeleteUser(ctx context.Context, userID string) error {
	token := a.token()
	return a.run(ctx, "admin.users.delete", "User deleted successfully", func(ctx context.Context) (func(), error) {
		if err := a.api.DeleteUser(ctx, token, userID); err != nil {
			return nil, err
		}
		return func() {
			if i := a.indexOf(userID); i >= 0 {
				a.users = append(a.users[:i], a.users[i+1:]...)
			}
		}, nil
	})
}

// token returns the current admin credential, or "" when anonymous. A
// missing credential is not checked locally; the API rejects the call with
// its own auth error.
func (a *AdminStore) token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.admin == nil {
		return ""
	}
	return a.admin.Token
}

func (a *AdminStore) indexOf(userID string) int {
	for i := range a.users {
		if a.users[i].ID == userID {
			return i
		}
	}
	return -1
}

func (a *AdminStore) persist(ctx context.Context, identity *Identity) {
	if err := a.vault.Store(ctx, RoleAdmin, identity); err != nil {
		a.logger.Error("admin session persist: %v", err)
	}
}
