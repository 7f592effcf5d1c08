package auth

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

type fakeAuthAPI struct {
	identity      *domain.Identity
	err           error
	loginCalls    int
	registerCalls int
	lastRegister  gateway.RegisterRequest
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (*domain.Identity, error) {
	f.loginCalls++
	return f.identity, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, req gateway.RegisterRequest) (*domain.Identity, error) {
	f.registerCalls++
	f.lastRegister = req
	return f.identity, f.err
}

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

type recordingNav struct {
	paths []string
}

func (n *recordingNav) NavigateTo(path string) {
	n.paths = append(n.paths, path)
}

func newTestStore(t *testing.T, api *fakeAuthAPI) *session.Store {
	t.Helper()
	storage := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	return session.NewStore(api, storage, session.NewTokenCache(), nil, zap.NewNop())
}

func validDriverForm() RegisterForm {
	return RegisterForm{
		Name: "D", Email: "d@x.com", Phone: "1",
		Password: "longenough", ConfirmPassword: "longenough",
		Role: domain.RoleDriver, VehicleModel: "Sedan", LicensePlate: "AB-123", Capacity: 4,
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	api := &fakeAuthAPI{}
	page := NewLoginPage(newTestStore(t, api), &recordingNav{}, zap.NewNop())

	for _, creds := range [][2]string{{"", "pw"}, {"a@x.com", ""}, {"", ""}} {
		err := page.Submit(context.Background(), creds[0], creds[1])
		assert.True(t, util.IsValidation(err))
	}
	assert.Zero(t, api.loginCalls)
	assert.Equal(t, "Email and password are required.", page.Error())
}

func TestLoginFailureShowsGenericMessage(t *testing.T) {
	api := &fakeAuthAPI{err: statusErr(http.StatusUnauthorized)}
	nav := &recordingNav{}
	page := NewLoginPage(newTestStore(t, api), nav, zap.NewNop())

	require.Error(t, page.Submit(context.Background(), "a@x.com", "wrong"))
	assert.Equal(t, "Invalid credentials. Please try again.", page.Error())
	assert.Empty(t, nav.paths)
	assert.False(t, page.Loading())
}

func TestLoginSuccessNavigatesToApp(t *testing.T) {
	api := &fakeAuthAPI{identity: &domain.Identity{Token: "t1", ID: 7, Email: "a@x.com", Role: domain.RolePassenger}}
	nav := &recordingNav{}
	store := newTestStore(t, api)
	page := NewLoginPage(store, nav, zap.NewNop())

	require.NoError(t, page.Submit(context.Background(), "a@x.com", "secret1"))
	assert.Equal(t, []string{"/app"}, nav.paths)
	assert.Empty(t, page.Error())
	assert.True(t, store.IsLoggedIn())
}

func TestRegisterValidation(t *testing.T) {
	api := &fakeAuthAPI{}
	page := NewRegisterPage(newTestStore(t, api), &recordingNav{}, zap.NewNop())

	tests := []struct {
		name    string
		mutate  func(*RegisterForm)
		message string
	}{
		{"missing name", func(f *RegisterForm) { f.Name = "" }, "Name, email and phone are required."},
		{"missing phone", func(f *RegisterForm) { f.Phone = "" }, "Name, email and phone are required."},
		{"short password", func(f *RegisterForm) { f.Password = "short"; f.ConfirmPassword = "short" }, "Password must be at least 8 characters."},
		{"mismatched confirm", func(f *RegisterForm) { f.ConfirmPassword = "different1" }, "Passwords do not match."},
		{"driver without vehicle", func(f *RegisterForm) { f.VehicleModel = "" }, "Please provide vehicle details and capacity for driver accounts."},
		{"driver with zero capacity", func(f *RegisterForm) { f.Capacity = 0 }, "Please provide vehicle details and capacity for driver accounts."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validDriverForm()
			tt.mutate(&form)

			err := page.Submit(context.Background(), form)
			assert.True(t, util.IsValidation(err))
			assert.Equal(t, tt.message, page.Error())
		})
	}
	assert.Zero(t, api.registerCalls)
}

func TestRegisterPassengerSkipsVehicleChecks(t *testing.T) {
	api := &fakeAuthAPI{identity: &domain.Identity{Token: "t1", ID: 8, Role: domain.RolePassenger}}
	nav := &recordingNav{}
	page := NewRegisterPage(newTestStore(t, api), nav, zap.NewNop())

	form := RegisterForm{
		Name: "P", Email: "p@x.com", Phone: "2",
		Password: "longenough", ConfirmPassword: "longenough",
		Role: domain.RolePassenger,
	}
	require.NoError(t, page.Submit(context.Background(), form))
	assert.Equal(t, []string{"/app"}, nav.paths)
	assert.Equal(t, domain.RolePassenger, api.lastRegister.Role)
}

func TestRegisterConflictMessage(t *testing.T) {
	api := &fakeAuthAPI{err: statusErr(http.StatusBadRequest)}
	page := NewRegisterPage(newTestStore(t, api), &recordingNav{}, zap.NewNop())

	require.Error(t, page.Submit(context.Background(), validDriverForm()))
	assert.Equal(t, "Email already exists. Please use a different email.", page.Error())
}

func TestRegisterGenericFailureMessage(t *testing.T) {
	api := &fakeAuthAPI{err: statusErr(http.StatusInternalServerError)}
	nav := &recordingNav{}
	page := NewRegisterPage(newTestStore(t, api), nav, zap.NewNop())

	require.Error(t, page.Submit(context.Background(), validDriverForm()))
	assert.Equal(t, "Could not create account. Please try again.", page.Error())
	assert.Empty(t, nav.paths)
}

func TestRegisterSuccessForwardsVehicleDetails(t *testing.T) {
	api := &fakeAuthAPI{identity: &domain.Identity{Token: "t2", ID: 9, Role: domain.RoleDriver}}
	page := NewRegisterPage(newTestStore(t, api), &recordingNav{}, zap.NewNop())

	require.NoError(t, page.Submit(context.Background(), validDriverForm()))
	assert.Equal(t, "Sedan", api.lastRegister.VehicleModel)
	assert.Equal(t, "AB-123", api.lastRegister.LicensePlate)
	assert.Equal(t, 4, api.lastRegister.Capacity)
}
