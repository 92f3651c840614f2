package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/headerauth/internal/client/client"
	"github.com/dmitrijs2005/headerauth/internal/client/repositories/slots"
	"github.com/dmitrijs2005/headerauth/internal/client/session"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

// fakeClient records calls. When gate is set, every call blocks on it after
// signalling entered.
type fakeClient struct {
	mu            sync.Mutex
	loginCalls    []client.LoginRequest
	registerCalls []client.RegisterRequest

	loginResp *client.LoginResponse
	loginErr  error
	regErr    error

	entered chan struct{}
	gate    chan struct{}
}

func (c *fakeClient) wait() {
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.gate != nil {
		<-c.gate
	}
}

func (c *fakeClient) Login(_ context.Context, req client.LoginRequest) (*client.LoginResponse, error) {
	c.mu.Lock()
	c.loginCalls = append(c.loginCalls, req)
	c.mu.Unlock()
	c.wait()
	return c.loginResp, c.loginErr
}

func (c *fakeClient) Register(_ context.Context, req client.RegisterRequest) (*client.RegisterResponse, error) {
	c.mu.Lock()
	c.registerCalls = append(c.registerCalls, req)
	c.mu.Unlock()
	c.wait()
	if c.regErr != nil {
		return nil, c.regErr
	}
	return &client.RegisterResponse{Message: "ok"}, nil
}

func (c *fakeClient) Close() error { return nil }

func (c *fakeClient) calls() (login, register int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loginCalls), len(c.registerCalls)
}

type note struct {
	kind string
	msg  string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) add(kind, msg string) {
	n.mu.Lock()
	n.notes = append(n.notes, note{kind, msg})
	n.mu.Unlock()
}

func (n *recordingNotifier) Info(msg string)    { n.add("info", msg) }
func (n *recordingNotifier) Success(msg string) { n.add("success", msg) }
func (n *recordingNotifier) Error(msg string)   { n.add("error", msg) }

func (n *recordingNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]note(nil), n.notes...)
}

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	n.mu.Unlock()
}

func (n *recordingNavigator) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func aliceToken(t *testing.T) string {
	return signedToken(t, jwt.MapClaims{
		"sub":   "42",
		"name":  "Alice",
		"email": "alice@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

func newTestStore() (*session.Store, *slots.MemoryRepository, *slots.MemoryRepository) {
	persistent := slots.NewMemoryRepository()
	transient := slots.NewMemoryRepository()
	return session.NewStore(persistent, transient, logging.Discard()), persistent, transient
}

func fillLogin(t *testing.T, f *Form, email, password string) {
	t.Helper()
	require.NoError(t, f.UpdateField(FieldEmail, email))
	require.NoError(t, f.UpdateField(FieldPassword, password))
}

func fillRegister(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.SwitchMode(ModeRegister))
	require.NoError(t, f.UpdateField(FieldName, "Alice"))
	require.NoError(t, f.UpdateField(FieldEmail, "alice@example.com"))
	require.NoError(t, f.UpdateField(FieldPassword, "secret1"))
	require.NoError(t, f.UpdateField(FieldPhone, "0901234567"))
	require.NoError(t, f.UpdateField(FieldAddress, "12 Le Loi, District 1"))
}
