package session

import (
	"context"
	"testing"
	"time"

	"DevBlogFrontend/internal/entity"
	"DevBlogFrontend/pkg/events"
	jwtPkg "DevBlogFrontend/pkg/jwt"
	"DevBlogFrontend/pkg/storage"
)

func newTestSession(t *testing.T, location string) (*Session, *events.Broker[events.AuthEvent]) {
	t.Helper()
	broker := events.NewBroker[events.AuthEvent]()
	t.Cleanup(broker.Close)
	return New("browser-1", storage.NewMemory(), location, WithEvents(broker)), broker
}

func TestPersistAndState(t *testing.T) {
	ctx := context.Background()
	s, broker := newTestSession(t, "/admin")
	sub, stop := broker.Subscribe(1)
	defer stop()

	token, exp, err := jwtPkg.Sign("secret", map[string]interface{}{"id": "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	err = s.Persist(ctx, entity.Session{
		AccessToken:  token,
		RefreshToken: "refresh",
		User:         &entity.User{ID: "u1", IsAdmin: true},
	})
	if err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	state, err := s.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.RefreshToken != "refresh" {
		t.Errorf("RefreshToken = %q, want %q", state.RefreshToken, "refresh")
	}
	if !state.IsAdmin() {
		t.Error("IsAdmin() = false, want true")
	}
	if state.ExpiresAt.Unix() != exp {
		t.Errorf("ExpiresAt = %d, want %d", state.ExpiresAt.Unix(), exp)
	}

	ok, err := s.IsAuthenticated(ctx, time.Now())
	if err != nil || !ok {
		t.Errorf("IsAuthenticated(now) = (%v, %v), want (true, nil)", ok, err)
	}
	ok, _ = s.IsAuthenticated(ctx, time.Now().Add(2*time.Hour))
	if ok {
		t.Error("IsAuthenticated after expiry = true, want false")
	}

	select {
	case ev := <-sub:
		if ev.Kind != events.AuthLogin || ev.UserID != "u1" || ev.Scope != "browser-1" {
			t.Errorf("event = %+v, want login for u1 in browser-1", ev)
		}
	default:
		t.Error("no login event published")
	}
}

func TestOpaqueTokenIsAuthenticatedWhilePresent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "/")

	if err := s.Persist(ctx, entity.Session{AccessToken: "not-a-jwt"}); err != nil {
		t.Fatal(err)
	}

	ok, err := s.IsAuthenticated(ctx, time.Now().Add(24*time.Hour))
	if err != nil || !ok {
		t.Errorf("IsAuthenticated = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestClearKeepsVisitorID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "/admin/blogs")

	_ = s.SetVisitorID(ctx, "visitor-1")
	_ = s.Persist(ctx, entity.Session{AccessToken: "a", RefreshToken: "r", User: &entity.User{ID: "u"}})

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	for _, key := range storage.AuthKeys {
		if _, ok, _ := s.Store().Get(ctx, key); ok {
			t.Errorf("key %q still stored after Clear", key)
		}
	}
	if v, _ := s.VisitorID(ctx); v != "visitor-1" {
		t.Errorf("VisitorID = %q, want %q", v, "visitor-1")
	}
	if user, _ := s.CurrentUser(ctx); user != nil {
		t.Errorf("CurrentUser = %+v, want nil", user)
	}
}

func TestCurrentUserIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, "/")
	_ = s.Store().Set(ctx, storage.KeyUser, "{not json")

	user, err := s.CurrentUser(ctx)
	if err != nil || user != nil {
		t.Errorf("CurrentUser = (%+v, %v), want (nil, nil)", user, err)
	}
}

func TestUnderAdmin(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"/admin", true},
		{"/admin/blogs/1/edit", true},
		{"/", false},
		{"/blog/admin", false},
		{"/login", false},
	}
	for _, tt := range tests {
		s := New("x", storage.NewMemory(), tt.location)
		if got := s.UnderAdmin(); got != tt.want {
			t.Errorf("UnderAdmin(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestFromWithoutSession(t *testing.T) {
	s := From(context.Background())
	if s == nil {
		t.Fatal("From() = nil")
	}
	if tok, err := s.AccessToken(context.Background()); err != nil || tok != "" {
		t.Errorf("AccessToken = (%q, %v), want empty", tok, err)
	}

	attached := New("b", storage.NewMemory(), "/")
	if got := From(With(context.Background(), attached)); got != attached {
		t.Error("From(With(s)) did not return s")
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	if _, ok := r.Redirected(); ok {
		t.Fatal("fresh recorder reports a redirect")
	}
	r.Redirect(LoginPath)
	if to, ok := r.Redirected(); !ok || to != LoginPath {
		t.Errorf("Redirected() = (%q, %v), want (%q, true)", to, ok, LoginPath)
	}
}
