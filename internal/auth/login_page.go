package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/internal/state"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

// LoginPage drives the login form.
type LoginPage struct {
	store   *session.Store
	nav     guard.Navigator
	logger  *zap.Logger
	loading *state.Signal[bool]
	errMsg  *state.Signal[string]
}

// NewLoginPage constructs the page. Login is reachable logged out, so
// there is no access guard here.
func NewLoginPage(store *session.Store, nav guard.Navigator, logger *zap.Logger) *LoginPage {
	return &LoginPage{
		store:   store,
		nav:     nav,
		logger:  logger,
		loading: state.NewSignal(false),
		errMsg:  state.NewSignal(""),
	}
}

// Submit validates the form locally, then attempts the login. Invalid
// input never reaches the gateway.
func (p *LoginPage) Submit(ctx context.Context, email, password string) error {
	p.errMsg.Set("")

	if email == "" || password == "" {
		err := util.NewValidationError("Email and password are required.")
		p.errMsg.Set(util.ToDomainError(err).Message)
		return err
	}

	p.loading.Set(true)
	defer p.loading.Set(false)

	if _, err := p.store.Login(ctx, email, password); err != nil {
		p.errMsg.Set("Invalid credentials. Please try again.")
		return err
	}

	p.nav.NavigateTo("/app")
	return nil
}

// Error returns the current inline error message.
func (p *LoginPage) Error() string {
	return p.errMsg.Get()
}

// Loading reports whether a login call is in flight.
func (p *LoginPage) Loading() bool {
	return p.loading.Get()
}
