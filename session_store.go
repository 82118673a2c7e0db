package console

import (
	"context"
)

// SessionStore owns the end-user identity and its request lifecycle. It is
// constructed once at application start and handed to consumers explicitly;
// there is no ambient singleton.
type SessionStore struct {
	core
	api   API
	vault Vault
	user  *Identity
}

type SessionStoreOption func(*SessionStore)

// WithSessionLogger overrides the logger used by the store.
func WithSessionLogger(l Logger) SessionStoreOption {
	return func(s *SessionStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionVault sets the persisted storage slot for the user identity.
func WithSessionVault(v Vault) SessionStoreOption {
	return func(s *SessionStore) {
		if v != nil {
			s.vault = v
		}
	}
}

// NewSessionStore builds the end-user session store and rehydrates any
// persisted identity from the vault so a reload does not re-authenticate.
func NewSessionStore(api API, opts ...SessionStoreOption) *SessionStore {
	if api == nil {
		panic("Missing API client in session store...")
	}

	s := &SessionStore{api: api, vault: discardVault{}}
	s.logger = defLogger{}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.rehydrate()
	return s
}

func (s *SessionStore) rehydrate() {
	identity, err := s.vault.Load(context.Background(), RoleUser)
	if err != nil {
		s.logger.Error("user session rehydrate: %v", err)
		return
	}
	if identity == nil {
		return
	}
	if TokenExpired(identity.Token) {
		s.logger.Info("user session rehydrate: stored token expired, discarding")
		if err := s.vault.Clear(context.Background(), RoleUser); err != nil {
			s.logger.Error("user session clear: %v", err)
		}
		return
	}
	s.user = identity
}

// Signup registers a new account. The payload is expected to have passed
// Validate at the dispatch boundary; the store trusts its caller. On success
// the returned identity is stored and persisted.
func (s *SessionStore) Signup(ctx context.Context, payload SignupPayload) error {
	return s.run(ctx, "session.signup", "Signup successful", func(ctx context.Context) (func(), error) {
		identity, err := s.api.Signup(ctx, payload)
		if err != nil {
			return nil, err
		}
		s.persist(ctx, identity)
		return func() { s.user = identity }, nil
	})
}

// Login authenticates with the user portal. On success the identity is
// stored and persisted; on rejection prior identity is untouched.
func (s *SessionStore) Login(ctx context.Context, creds Credentials) error {
	return s.run(ctx, "session.login", "Login successful", func(ctx context.Context) (func(), error) {
		identity, err := s.api.Login(ctx, creds)
		if err != nil {
			return nil, err
		}
		s.persist(ctx, identity)
		return func() { s.user = identity }, nil
	})
}

// Logout clears the identity and its vault slot. No network call is made.
// It also clears the request status: a message from a previous request must
// not resurface on the login screen the user lands on next.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.status = RequestStatus{}
	s.mu.Unlock()

	if err := s.vault.Clear(ctx, RoleUser); err != nil {
		s.logger.Error("user session clear: %v", err)
	}

	s.logger.Debug("session.logout: identity cleared")
	s.changed()
}

// Current returns a copy of the signed-in identity, or nil when anonymous.
func (s *SessionStore) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	identity := *s.user
	return &identity
}

// Authenticated reports identity presence for the route guards.
func (s *SessionStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *SessionStore) persist(ctx context.Context, identity *Identity) {
	if err := s.vault.Store(ctx, RoleUser, identity); err != nil {
		// Persistence is best effort: the live session stands even when the
		// vault write fails, it just will not survive a reload.
		s.logger.Error("user session persist: %v", err)
	}
}
