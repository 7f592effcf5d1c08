package session

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/events"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/state"
)

// AuthAPI is the slice of the gateway the store needs for login and
// registration.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*domain.Identity, error)
}

// Store holds the authenticated identity for the whole client. All
// role-gated pages read the same reactive slot; only the store writes it.
type Store struct {
	api        AuthAPI
	storage    Storage
	cache      *TokenCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	current    *state.Signal[*domain.Identity]
}

// NewStore builds the session store. Call Hydrate before first use.
func NewStore(api AuthAPI, storage Storage, cache *TokenCache, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	return &Store{
		api:        api,
		storage:    storage,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
		current:    state.NewSignal[*domain.Identity](nil),
	}
}

// Hydrate restores the session from durable storage. A missing or
// unreadable entry, or an already expired token, leaves the slot empty;
// there is no partial hydration.
func (s *Store) Hydrate(ctx context.Context) error {
	token, raw, ok, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		s.logger.Warn("stored identity unreadable, discarding session", zap.Error(err))
		return s.storage.Clear(ctx)
	}

	if tokenExpired(token, time.Now()) {
		s.logger.Info("stored token expired, discarding session")
		return s.storage.Clear(ctx)
	}

	identity.Token = token
	s.cache.put(token)
	s.current.Set(&identity)
	return nil
}

// Login authenticates against the backend and establishes the session.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	identity, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.establish(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Register creates an account and establishes the session.
func (s *Store) Register(ctx context.Context, req gateway.RegisterRequest) (*domain.Identity, error) {
	identity, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.establish(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// establish persists both durable entries and then updates the slot in
// the same synchronous step. Storage is the source of truth on reload,
// so the write happens first.
func (s *Store) establish(ctx context.Context, identity *domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, identity.Token, raw); err != nil {
		return err
	}

	s.cache.put(identity.Token)
	s.current.Set(identity)
	s.publishSessionChanged(ctx, identity)
	return nil
}

// Logout clears both durable entries and the slot unconditionally.
// No network call is made.
func (s *Store) Logout(ctx context.Context) error {
	err := s.storage.Clear(ctx)
	s.cache.put("")
	s.current.Set(nil)
	s.publishSessionChanged(ctx, nil)
	return err
}

// Current returns the live identity, nil when logged out.
func (s *Store) Current() *domain.Identity {
	return s.current.Get()
}

// IsLoggedIn reports whether an identity is live.
func (s *Store) IsLoggedIn() bool {
	return s.current.Get() != nil
}

// Token implements gateway.TokenSource through the shared cache.
func (s *Store) Token() string {
	return s.cache.Token()
}

// Watch registers a callback for session changes.
func (s *Store) Watch(fn func(*domain.Identity)) {
	s.current.Watch(fn)
}

func (s *Store) publishSessionChanged(ctx context.Context, identity *domain.Identity) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventSessionChanged,
		Payload: events.SessionChangedPayload{Identity: identity},
	})
}
