package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/headerauth/internal/client/client"
	"github.com/dmitrijs2005/headerauth/internal/client/models"
	"github.com/dmitrijs2005/headerauth/internal/client/token"
	"github.com/dmitrijs2005/headerauth/internal/common"
	"github.com/dmitrijs2005/headerauth/internal/logging"
	"github.com/google/uuid"
)

// SessionCommitter is the part of the session store the form writes to.
type SessionCommitter interface {
	Commit(ctx context.Context, token string, id *models.Identity) error
}

// Decoder turns a credential token into an identity.
type Decoder func(raw string) (*models.Identity, error)

// FormOption configures a Form.
type FormOption func(*Form)

func WithDecoder(d Decoder) FormOption {
	return func(f *Form) {
		if d != nil {
			f.decode = d
		}
	}
}

func WithHomeRoute(route string) FormOption {
	return func(f *Form) {
		if route != "" {
			f.homeRoute = route
		}
	}
}

// WithPhoneRegion sets the region used to parse phone numbers without a
// country prefix (ISO 3166-1 alpha-2, e.g. "VN").
func WithPhoneRegion(region string) FormOption {
	return func(f *Form) {
		if region != "" {
			f.phoneRegion = region
		}
	}
}

// WithLoginHook runs after a login is committed, before the success toast.
// The header uses it to close the modal.
func WithLoginHook(fn func()) FormOption {
	return func(f *Form) { f.onLogin = fn }
}

// Form is the login/registration form controller.
type Form struct {
	client      client.Client
	session     SessionCommitter
	notifier    Notifier
	navigator   Navigator
	log         logging.Logger
	decode      Decoder
	onLogin     func()
	homeRoute   string
	phoneRegion string

	// applyMu serialises applying a completion against Close, so nothing is
	// applied after Close returns.
	applyMu sync.Mutex

	mu       sync.Mutex
	mode     Mode
	fields   Fields
	inFlight uuid.UUID
	closed   bool
}

func NewForm(c client.Client, s SessionCommitter, n Notifier, nav Navigator, log logging.Logger, opts ...FormOption) *Form {
	f := &Form{
		client:      c,
		session:     s,
		notifier:    n,
		navigator:   nav,
		log:         log.With("component", "auth-form"),
		decode:      token.Decode,
		homeRoute:   common.RouteHome,
		phoneRegion: "VN",
		mode:        ModeLogin,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// UpdateField sets one field. No validation happens here.
func (f *Form) UpdateField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.set(name, value)
}

// SwitchMode changes between login and register. Field values are kept so
// the user does not retype email and password.
func (f *Form) SwitchMode(target Mode) error {
	if target != ModeLogin && target != ModeRegister {
		return fmt.Errorf("%w: %q", ErrUnknownMode, target)
	}
	f.mu.Lock()
	f.mode = target
	f.mu.Unlock()
	return nil
}

func (f *Form) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Values returns a copy of the current field values.
func (f *Form) Values() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight != uuid.Nil
}

// Close detaches the form. A submission still in flight completes without
// touching the session, the notifier or the navigator.
func (f *Form) Close() {
	f.applyMu.Lock()
	defer f.applyMu.Unlock()

	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Form) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Submit validates the form and runs login or registration.
//
// Every failure has already been reported through the Notifier when Submit
// returns; the error exists for callers that branch on the outcome. A submit
// issued while another is in flight returns ErrSubmissionInFlight without
// side effects.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrControllerClosed
	}
	if f.inFlight != uuid.Nil {
		running := f.inFlight
		f.mu.Unlock()
		f.log.Debug(ctx, "submit ignored", "running_request_id", running.String())
		return ErrSubmissionInFlight
	}
	requestID := uuid.New()
	f.inFlight = requestID
	mode, fields := f.mode, f.fields
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		if f.inFlight == requestID {
			f.inFlight = uuid.Nil
		}
		f.mu.Unlock()
	}()

	log := f.log.With("request_id", requestID.String(), "mode", string(mode))

	if err := validateFields(mode, fields, f.phoneRegion); err != nil {
		log.Info(ctx, "form invalid", "error", err)
		f.notifier.Error(validationMessage(err))
		return err
	}

	if mode == ModeRegister {
		return f.register(ctx, log, fields)
	}
	return f.login(ctx, log, fields)
}

func (f *Form) register(ctx context.Context, log logging.Logger, fields Fields) error {
	_, err := f.client.Register(ctx, client.RegisterRequest{
		Name:     fields.Name,
		Email:    fields.Email,
		Password: fields.Password,
		Phone:    fields.Phone,
		Address:  fields.Address,
	})

	f.applyMu.Lock()
	defer f.applyMu.Unlock()
	if f.isClosed() {
		log.Debug(ctx, "register completion dropped after close")
		return ErrControllerClosed
	}

	if err != nil {
		log.Warn(ctx, "register failed", "error", err)
		f.reportFailure(err)
		return fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	}

	f.mu.Lock()
	f.mode = ModeLogin
	f.fields = Fields{}
	f.mu.Unlock()

	log.Info(ctx, "registered", "email", fields.Email)
	f.notifier.Success(common.MsgRegisterSucceeded)
	return nil
}

func (f *Form) login(ctx context.Context, log logging.Logger, fields Fields) error {
	resp, err := f.client.Login(ctx, client.LoginRequest{
		Email:    fields.Email,
		Password: fields.Password,
	})

	f.applyMu.Lock()
	defer f.applyMu.Unlock()
	if f.isClosed() {
		log.Debug(ctx, "login completion dropped after close")
		return ErrControllerClosed
	}

	if err != nil {
		log.Warn(ctx, "login failed", "error", err)
		f.reportFailure(err)
		return fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	}

	if resp == nil || strings.TrimSpace(resp.Token) == "" {
		log.Warn(ctx, "login response without token")
		f.notifier.Error(common.MsgLoginNoToken)
		return ErrMissingToken
	}
	raw := strings.TrimSpace(resp.Token)

	id, err := f.decode(raw)
	if err != nil {
		log.Warn(ctx, "token rejected", "error", err, "token", logging.Redact(raw))
		f.reportFailure(err)
		return err
	}

	if err := f.session.Commit(ctx, raw, id); err != nil {
		log.Error(ctx, "session commit failed", "error", err)
		f.notifier.Error(common.MsgErrorPrefix + common.MsgSessionNotSaved)
		return fmt.Errorf("%w: %w", ErrSessionNotSaved, err)
	}

	if f.onLogin != nil {
		f.onLogin()
	}
	log.Info(ctx, "logged in", "user", id.DisplayName(""))
	f.notifier.Success(common.MsgLoginSucceeded)
	f.navigator.Navigate(f.homeRoute)

	f.mu.Lock()
	f.fields = Fields{}
	f.mu.Unlock()
	return nil
}

// reportFailure shows the server's message when it sent one, otherwise the
// generic credentials message.
func (f *Form) reportFailure(err error) {
	msg := common.MsgInvalidCredentials
	if m, ok := client.ServerMessage(err); ok {
		msg = m
	}
	f.notifier.Error(common.MsgErrorPrefix + msg)
}
