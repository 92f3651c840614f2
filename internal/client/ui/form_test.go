package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/dmitrijs2005/headerauth/internal/client/client"
	"github.com/dmitrijs2005/headerauth/internal/client/models"
	"github.com/dmitrijs2005/headerauth/internal/client/token"
	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/logging"
)

type formFixture struct {
	form     *Form
	client   *fakeClient
	notifier *recordingNotifier
	nav      *recordingNavigator
	closed   int
}

func newFormFixture(t *testing.T, c *fakeClient, s SessionCommitter, opts ...FormOption) *formFixture {
	t.Helper()
	fx := &formFixture{client: c, notifier: &recordingNotifier{}, nav: &recordingNavigator{}}
	opts = append([]FormOption{WithLoginHook(func() { fx.closed++ })}, opts...)
	fx.form = NewForm(c, s, fx.notifier, fx.nav, logging.Discard(), opts...)
	return fx
}

type failingCommitter struct{ err error }

func (f failingCommitter) Commit(context.Context, string, *models.Identity) error { return f.err }

func TestForm_LoginSuccess(t *testing.T) {
	raw := aliceToken(t)
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{loginResp: &client.LoginResponse{Token: raw}}, store)
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	require.NoError(t, fx.form.Submit(context.Background()))

	login, register := fx.client.calls()
	assert.Equal(t, 1, login)
	assert.Equal(t, 0, register)
	assert.Equal(t, client.LoginRequest{Email: "alice@example.com", Password: "secret1"}, fx.client.loginCalls[0])

	require.NotNil(t, store.Identity())
	assert.Equal(t, "Alice", store.Identity().Name)
	assert.Equal(t, raw, store.Token())
	assert.Equal(t, 1, fx.closed)
	assert.Equal(t, []string{common.RouteHome}, fx.nav.all())
	assert.Equal(t, []note{{"success", common.MsgLoginSucceeded}}, fx.notifier.all())
	assert.Equal(t, Fields{}, fx.form.Values())
	assert.False(t, fx.form.Submitting())
}

func TestForm_LoginNavigatesToConfiguredHome(t *testing.T) {
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{loginResp: &client.LoginResponse{Token: aliceToken(t)}}, store,
		WithHomeRoute("/dashboard"))
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	require.NoError(t, fx.form.Submit(context.Background()))
	assert.Equal(t, []string{"/dashboard"}, fx.nav.all())
}

func TestForm_ShortPasswordNeverCallsClient(t *testing.T) {
	for _, mode := range []Mode{ModeLogin, ModeRegister} {
		t.Run(string(mode), func(t *testing.T) {
			store, persistent, _ := newTestStore()
			fx := newFormFixture(t, &fakeClient{}, store)
			if mode == ModeRegister {
				fillRegister(t, fx.form)
			} else {
				fillLogin(t, fx.form, "alice@example.com", "")
			}
			require.NoError(t, fx.form.UpdateField(FieldPassword, "12345"))

			err := fx.form.Submit(context.Background())

			require.ErrorIs(t, err, ErrValidation)
			login, register := fx.client.calls()
			assert.Zero(t, login+register)
			assert.Equal(t, []note{{"error", common.MsgPasswordTooShort}}, fx.notifier.all())
			assert.Zero(t, persistent.Len())
			assert.Equal(t, "12345", fx.form.Values().Password)
		})
	}
}

func TestForm_InvalidEmailReportsField(t *testing.T) {
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{}, store)
	fillLogin(t, fx.form, "alice", "secret1")

	err := fx.form.Submit(context.Background())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, FieldEmail, ve.Field)
	notes := fx.notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "error", notes[0].kind)
	assert.Contains(t, notes[0].msg, "Error: email")
}

func TestForm_RemoteFailureMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server message",
			err:     &client.APIError{Code: codes.Unauthenticated, Message: "wrong password", Err: client.ErrUnauthorized},
			wantMsg: "Error: wrong password",
		},
		{
			name:    "no server message",
			err:     client.ErrUnavailable,
			wantMsg: "Error: " + common.MsgInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, persistent, _ := newTestStore()
			fx := newFormFixture(t, &fakeClient{loginErr: tt.err}, store)
			fillLogin(t, fx.form, "alice@example.com", "secret1")

			err := fx.form.Submit(context.Background())

			require.ErrorIs(t, err, ErrCredentialRejected)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, []note{{"error", tt.wantMsg}}, fx.notifier.all())
			assert.Nil(t, store.Identity())
			assert.Zero(t, persistent.Len())
			assert.Empty(t, fx.nav.all())
			assert.Zero(t, fx.closed)
			assert.Equal(t, "alice@example.com", fx.form.Values().Email)
		})
	}
}

func TestForm_MissingToken(t *testing.T) {
	for name, resp := range map[string]*client.LoginResponse{
		"nil response": nil,
		"empty token":  {Token: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			store, persistent, _ := newTestStore()
			fx := newFormFixture(t, &fakeClient{loginResp: resp}, store)
			fillLogin(t, fx.form, "alice@example.com", "secret1")

			err := fx.form.Submit(context.Background())

			require.ErrorIs(t, err, ErrMissingToken)
			assert.Equal(t, []note{{"error", common.MsgLoginNoToken}}, fx.notifier.all())
			assert.Nil(t, store.Identity())
			assert.Zero(t, persistent.Len())
			assert.Empty(t, fx.nav.all())
		})
	}
}

func TestForm_UndecodableTokenLeavesStoreUnchanged(t *testing.T) {
	store, persistent, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{loginResp: &client.LoginResponse{Token: "not-a-jwt"}}, store)
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	err := fx.form.Submit(context.Background())

	require.ErrorIs(t, err, token.ErrMalformedToken)
	assert.Equal(t, []note{{"error", "Error: " + common.MsgInvalidCredentials}}, fx.notifier.all())
	assert.Nil(t, store.Identity())
	assert.Empty(t, store.Token())
	assert.Zero(t, persistent.Len())
	assert.Empty(t, fx.nav.all())
	assert.Zero(t, fx.closed)
}

func TestForm_CommitFailure(t *testing.T) {
	boom := errors.New("disk full")
	fx := newFormFixture(t, &fakeClient{loginResp: &client.LoginResponse{Token: aliceToken(t)}}, failingCommitter{err: boom})
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	err := fx.form.Submit(context.Background())

	require.ErrorIs(t, err, ErrSessionNotSaved)
	require.ErrorIs(t, err, boom)
	notes := fx.notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "error", notes[0].kind)
	assert.Empty(t, fx.nav.all())
	assert.Zero(t, fx.closed)
}

func TestForm_CustomDecoder(t *testing.T) {
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{loginResp: &client.LoginResponse{Token: "opaque"}}, store,
		WithDecoder(func(raw string) (*models.Identity, error) {
			return &models.Identity{Email: raw + "@example.com"}, nil
		}))
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	require.NoError(t, fx.form.Submit(context.Background()))
	assert.Equal(t, "opaque@example.com", store.Identity().Email)
}

func TestForm_RegisterSuccessLeavesSessionAlone(t *testing.T) {
	store, persistent, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{}, store)
	fillRegister(t, fx.form)

	require.NoError(t, fx.form.Submit(context.Background()))

	login, register := fx.client.calls()
	assert.Equal(t, 0, login)
	require.Equal(t, 1, register)
	assert.Equal(t, client.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Phone:    "0901234567",
		Address:  "12 Le Loi, District 1",
	}, fx.client.registerCalls[0])

	assert.Equal(t, ModeLogin, fx.form.Mode())
	assert.Equal(t, Fields{}, fx.form.Values())
	assert.Nil(t, store.Identity())
	assert.Zero(t, persistent.Len())
	assert.Empty(t, fx.nav.all())
	assert.Zero(t, fx.closed)
	assert.Equal(t, []note{{"success", common.MsgRegisterSucceeded}}, fx.notifier.all())
}

func TestForm_RegisterFailureKeepsMode(t *testing.T) {
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{
		regErr: &client.APIError{Code: codes.AlreadyExists, Message: "email already registered", Err: client.ErrRejected},
	}, store)
	fillRegister(t, fx.form)

	err := fx.form.Submit(context.Background())

	require.ErrorIs(t, err, ErrCredentialRejected)
	assert.Equal(t, ModeRegister, fx.form.Mode())
	assert.Equal(t, "Alice", fx.form.Values().Name)
	assert.Equal(t, []note{{"error", "Error: email already registered"}}, fx.notifier.all())
}

func TestForm_SwitchModeKeepsCredentials(t *testing.T) {
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{}, store)
	fillRegister(t, fx.form)

	require.NoError(t, fx.form.SwitchMode(ModeLogin))

	v := fx.form.Values()
	assert.Equal(t, ModeLogin, fx.form.Mode())
	assert.Equal(t, "alice@example.com", v.Email)
	assert.Equal(t, "secret1", v.Password)

	assert.ErrorIs(t, fx.form.SwitchMode("admin"), ErrUnknownMode)
	assert.Equal(t, ModeLogin, fx.form.Mode())
}

func TestForm_UpdateUnknownField(t *testing.T) {
	store, _, _ := newTestStore()
	fx := newFormFixture(t, &fakeClient{}, store)
	assert.ErrorIs(t, fx.form.UpdateField("age", "3"), ErrUnknownField)
}

func TestForm_RejectsSecondSubmitWhileInFlight(t *testing.T) {
	c := &fakeClient{
		loginResp: &client.LoginResponse{Token: aliceToken(t)},
		entered:   make(chan struct{}, 1),
		gate:      make(chan struct{}),
	}
	store, _, _ := newTestStore()
	fx := newFormFixture(t, c, store)
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	done := make(chan error, 1)
	go func() { done <- fx.form.Submit(context.Background()) }()
	<-c.entered

	assert.True(t, fx.form.Submitting())
	assert.ErrorIs(t, fx.form.Submit(context.Background()), ErrSubmissionInFlight)

	close(c.gate)
	require.NoError(t, <-done)

	login, _ := c.calls()
	assert.Equal(t, 1, login)
	assert.Equal(t, []string{common.RouteHome}, fx.nav.all())
	assert.False(t, fx.form.Submitting())
}

func TestForm_StaleCompletionAfterCloseIsNoop(t *testing.T) {
	c := &fakeClient{
		loginResp: &client.LoginResponse{Token: aliceToken(t)},
		entered:   make(chan struct{}, 1),
		gate:      make(chan struct{}),
	}
	store, persistent, _ := newTestStore()
	fx := newFormFixture(t, c, store)
	fillLogin(t, fx.form, "alice@example.com", "secret1")

	done := make(chan error, 1)
	go func() { done <- fx.form.Submit(context.Background()) }()
	<-c.entered

	fx.form.Close()
	close(c.gate)

	require.ErrorIs(t, <-done, ErrControllerClosed)
	assert.Nil(t, store.Identity())
	assert.Zero(t, persistent.Len())
	assert.Empty(t, fx.notifier.all())
	assert.Empty(t, fx.nav.all())
	assert.Zero(t, fx.closed)

	assert.ErrorIs(t, fx.form.Submit(context.Background()), ErrControllerClosed)
}
