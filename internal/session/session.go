// Package session is the per-browser auth and identity state that every
// service call reads from its context.
package session

import (
	"context"
	"strings"
	"time"

	"DevBlogFrontend/internal/entity"
	"DevBlogFrontend/pkg/events"
	jwtPkg "DevBlogFrontend/pkg/jwt"
	"DevBlogFrontend/pkg/storage"

	jsoniter "github.com/json-iterator/go"
)

const (
	AdminPrefix = "/admin"
	LoginPath   = "/login"
	HomePath    = "/"
)

type ctxKey struct{}

type Session struct {
	scope    string
	store    storage.Store
	location string
	nav      Navigator
	events   *events.Broker[events.AuthEvent]
}

type Option func(*Session)

func WithNavigator(nav Navigator) Option {
	return func(s *Session) {
		s.nav = nav
	}
}

func WithEvents(broker *events.Broker[events.AuthEvent]) Option {
	return func(s *Session) {
		s.events = broker
	}
}

// New binds a browser scope to its store. location is the route the
// browser is currently on; it decides how a 401 is handled.
func New(scope string, store storage.Store, location string, opts ...Option) *Session {
	s := &Session{
		scope:    scope,
		store:    store,
		location: location,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.nav == nil {
		s.nav = &Recorder{}
	}
	return s
}

func With(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the session carried by ctx. Without one the caller behaves
// like a fresh browser with empty storage.
func From(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok && s != nil {
		return s
	}
	return New("", storage.NewMemory(), HomePath)
}

func (s *Session) Scope() string {
	return s.scope
}

func (s *Session) Store() storage.Store {
	return s.store
}

func (s *Session) Location() string {
	return s.location
}

func (s *Session) Navigator() Navigator {
	return s.nav
}

func (s *Session) Redirect(to string) {
	s.nav.Redirect(to)
}

func (s *Session) Redirected() (string, bool) {
	return s.nav.Redirected()
}

// UnderAdmin reports whether the current location is in the admin area.
func (s *Session) UnderAdmin() bool {
	return strings.HasPrefix(s.location, AdminPrefix)
}

func (s *Session) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, storage.KeyAccessToken)
	return v, err
}

func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, storage.KeyRefreshToken)
	return v, err
}

func (s *Session) VisitorID(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, storage.KeyVisitorID)
	return v, err
}

func (s *Session) SetVisitorID(ctx context.Context, id string) error {
	return s.store.Set(ctx, storage.KeyVisitorID, id)
}

// CurrentUser returns the stored user record, or nil when none is stored or
// the stored value is unreadable.
func (s *Session) CurrentUser(ctx context.Context) (*entity.User, error) {
	raw, ok, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil || !ok || raw == "" {
		return nil, err
	}

	var user entity.User
	if err := jsoniter.UnmarshalFromString(raw, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Persist stores a freshly issued login and announces it.
func (s *Session) Persist(ctx context.Context, sess entity.Session) error {
	if err := s.store.Set(ctx, storage.KeyAccessToken, sess.AccessToken); err != nil {
		return err
	}
	if err := s.store.Set(ctx, storage.KeyRefreshToken, sess.RefreshToken); err != nil {
		return err
	}

	userID := ""
	if sess.User != nil {
		raw, err := jsoniter.MarshalToString(sess.User)
		if err != nil {
			return err
		}
		if err := s.store.Set(ctx, storage.KeyUser, raw); err != nil {
			return err
		}
		userID = sess.User.ID
	}

	s.Publish(events.AuthLogin, userID)
	return nil
}

// Clear removes every auth key. The visitor id and the preview draft
// survive.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, storage.AuthKeys...)
}

func (s *Session) Publish(kind events.AuthEventKind, userID string) {
	if s.events == nil {
		return
	}
	s.events.Publish(events.AuthEvent{
		Scope:  s.scope,
		Kind:   kind,
		UserID: userID,
		At:     time.Now(),
	})
}

// State assembles the stored login into an entity.Session. ExpiresAt is
// read from the access token's exp claim when it has one.
func (s *Session) State(ctx context.Context) (entity.Session, error) {
	access, err := s.AccessToken(ctx)
	if err != nil {
		return entity.Session{}, err
	}
	refresh, err := s.RefreshToken(ctx)
	if err != nil {
		return entity.Session{}, err
	}
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return entity.Session{}, err
	}

	state := entity.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}
	if access != "" {
		if exp, err := jwtPkg.ExpiresAt(access); err == nil {
			state.ExpiresAt = exp
		}
	}
	return state, nil
}

func (s *Session) IsAuthenticated(ctx context.Context, now time.Time) (bool, error) {
	state, err := s.State(ctx)
	if err != nil {
		return false, err
	}
	return state.Authenticated(now), nil
}

// IsAdmin reports whether the stored login is live at now and belongs to an
// admin.
func (s *Session) IsAdmin(ctx context.Context, now time.Time) (bool, error) {
	state, err := s.State(ctx)
	if err != nil {
		return false, err
	}
	return state.Authenticated(now) && state.IsAdmin(), nil
}
