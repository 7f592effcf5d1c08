package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/internal/state"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

// RegisterForm carries the raw registration inputs.
type RegisterForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Role            domain.Role
	VehicleModel    string
	LicensePlate    string
	Capacity        int
}

// RegisterPage drives the registration form.
type RegisterPage struct {
	store   *session.Store
	nav     guard.Navigator
	logger  *zap.Logger
	loading *state.Signal[bool]
	errMsg  *state.Signal[string]
}

// NewRegisterPage constructs the page.
func NewRegisterPage(store *session.Store, nav guard.Navigator, logger *zap.Logger) *RegisterPage {
	return &RegisterPage{
		store:   store,
		nav:     nav,
		logger:  logger,
		loading: state.NewSignal(false),
		errMsg:  state.NewSignal(""),
	}
}

// Submit validates locally, then registers. A 400 from the backend
// means the email is already taken.
func (p *RegisterPage) Submit(ctx context.Context, form RegisterForm) error {
	p.errMsg.Set("")

	if err := p.validate(form); err != nil {
		p.errMsg.Set(util.ToDomainError(err).Message)
		return err
	}

	p.loading.Set(true)
	defer p.loading.Set(false)

	req := gateway.RegisterRequest{
		Email:        form.Email,
		Password:     form.Password,
		Name:         form.Name,
		Phone:        form.Phone,
		Role:         form.Role,
		VehicleModel: form.VehicleModel,
		LicensePlate: form.LicensePlate,
		Capacity:     form.Capacity,
	}
	if _, err := p.store.Register(ctx, req); err != nil {
		if util.IsConflict(err) {
			p.errMsg.Set("Email already exists. Please use a different email.")
		} else {
			p.errMsg.Set("Could not create account. Please try again.")
		}
		return err
	}

	p.nav.NavigateTo("/app")
	return nil
}

func (p *RegisterPage) validate(form RegisterForm) error {
	if form.Name == "" || form.Email == "" || form.Phone == "" {
		return util.NewValidationError("Name, email and phone are required.")
	}
	if len(form.Password) < 8 {
		return util.NewValidationError("Password must be at least 8 characters.")
	}
	if form.Password != form.ConfirmPassword {
		return util.NewValidationError("Passwords do not match.")
	}
	if form.Role == domain.RoleDriver &&
		(form.VehicleModel == "" || form.LicensePlate == "" || form.Capacity <= 0) {
		return util.NewValidationError("Please provide vehicle details and capacity for driver accounts.")
	}
	return nil
}

// Error returns the current inline error message.
func (p *RegisterPage) Error() string {
	return p.errMsg.Get()
}

// Loading reports whether a register call is in flight.
func (p *RegisterPage) Loading() bool {
	return p.loading.Get()
}
