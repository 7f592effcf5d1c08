package admin

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/events"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

type fakeAuthAPI struct {
	identity *domain.Identity
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (*domain.Identity, error) {
	return f.identity, nil
}

func (f *fakeAuthAPI) Register(_ context.Context, _ gateway.RegisterRequest) (*domain.Identity, error) {
	return f.identity, nil
}

type fakeAdminAPI struct {
	mu       sync.Mutex
	users    []domain.AdminUser
	rides    []domain.Ride
	bookings []domain.Booking
	payments []domain.Payment

	usersErr  error
	ridesErr  error
	blockErr  error
	verifyErr error
	updateErr error
	deleteErr error

	counts  map[string]int
	updates []domain.UserEdit
	deleted []int64
}

func (f *fakeAdminAPI) record(op string) {
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[op]++
}

func (f *fakeAdminAPI) calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[op]
}

func (f *fakeAdminAPI) AdminListUsers(_ context.Context) ([]domain.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("users")
	return f.users, f.usersErr
}

func (f *fakeAdminAPI) AdminListRides(_ context.Context) ([]domain.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("rides")
	return f.rides, f.ridesErr
}

func (f *fakeAdminAPI) AdminListBookings(_ context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("bookings")
	return f.bookings, nil
}

func (f *fakeAdminAPI) AdminListPayments(_ context.Context) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("payments")
	return f.payments, nil
}

func (f *fakeAdminAPI) BlockUser(_ context.Context, _ int64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("block")
	return f.blockErr
}

func (f *fakeAdminAPI) VerifyDriver(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("verify")
	return f.verifyErr
}

func (f *fakeAdminAPI) UpdateUser(_ context.Context, _ int64, edit domain.UserEdit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update")
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, edit)
	return nil
}

func (f *fakeAdminAPI) DeleteUser(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type recordingNav struct {
	paths []string
}

func (n *recordingNav) NavigateTo(path string) {
	n.paths = append(n.paths, path)
}

func storeWithRole(t *testing.T, role domain.Role) *session.Store {
	t.Helper()
	identity := &domain.Identity{Token: "t1", ID: 1, Email: "admin@x.com", Role: role, Name: "Admin"}
	storage := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	store := session.NewStore(&fakeAuthAPI{identity: identity}, storage, session.NewTokenCache(), nil, zap.NewNop())
	_, err := store.Login(context.Background(), identity.Email, "secret1")
	require.NoError(t, err)
	return store
}

func sampleUsers() []domain.AdminUser {
	return []domain.AdminUser{
		{ID: 1, Name: "Root", Role: domain.RoleAdmin},
		{ID: 2, Name: "Verified", Role: domain.RoleDriver, DriverVerified: true, VehicleModel: "Sedan", Capacity: 4},
		{ID: 3, Name: "Applicant", Role: domain.RoleDriver, DriverVerified: false},
		{ID: 4, Name: "Rider", Role: domain.RolePassenger},
	}
}

func newTestConsole(t *testing.T, api *fakeAdminAPI) *Console {
	t.Helper()
	c, err := NewConsole(context.Background(), api, storeWithRole(t, domain.RoleAdmin),
		&recordingNav{}, events.NewInMemoryDispatcher(), 50*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestConsoleRedirectsNonAdmins(t *testing.T) {
	for _, role := range []domain.Role{domain.RolePassenger, domain.RoleDriver} {
		api := &fakeAdminAPI{}
		nav := &recordingNav{}

		_, err := NewConsole(context.Background(), api, storeWithRole(t, role), nav, nil, time.Second, zap.NewNop())
		assert.ErrorIs(t, err, guard.ErrRedirected)
		assert.Equal(t, []string{"/"}, nav.paths)
		assert.Zero(t, api.calls("users"))
	}
}

func TestConsoleLoadsAllListsOnce(t *testing.T) {
	api := &fakeAdminAPI{
		users:    sampleUsers(),
		rides:    []domain.Ride{{ID: 1}, {ID: 2}},
		bookings: []domain.Booking{{ID: 1}},
		payments: []domain.Payment{{ID: 1}},
	}
	c := newTestConsole(t, api)

	assert.Equal(t, 1, api.calls("users"))
	assert.Equal(t, 1, api.calls("rides"))
	assert.Equal(t, 1, api.calls("bookings"))
	assert.Equal(t, 1, api.calls("payments"))

	assert.Len(t, c.Users(), 4)
	assert.Len(t, c.Bookings(), 1)
	assert.Len(t, c.Payments(), 1)
	assert.Equal(t, 2, c.CountRides())
	assert.Empty(t, c.Error())
}

func TestConsoleOnlyUsersFailureRaisesError(t *testing.T) {
	api := &fakeAdminAPI{usersErr: assert.AnError, rides: []domain.Ride{{ID: 1}}}
	c := newTestConsole(t, api)

	assert.Equal(t, "Failed to load users", c.Error())
	// the other lists still land
	assert.Equal(t, 1, c.CountRides())
}

func TestConsoleRidesFailureIsSilent(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers(), ridesErr: assert.AnError}
	c := newTestConsole(t, api)

	assert.Empty(t, c.Error())
	assert.Len(t, c.Users(), 4)
}

func TestTabPartitioning(t *testing.T) {
	c := newTestConsole(t, &fakeAdminAPI{users: sampleUsers()})

	tests := []struct {
		tab Tab
		ids []int64
	}{
		{TabTeam, []int64{1}},
		{TabDrivers, []int64{2, 3}},
		{TabUsers, []int64{4}},
		{TabRequests, []int64{3}},
		{TabRides, nil},
	}
	for _, tt := range tests {
		c.SetTab(tt.tab)
		var ids []int64
		for _, u := range c.DisplayUsers() {
			ids = append(ids, u.ID)
		}
		assert.Equal(t, tt.ids, ids, "tab %s", tt.tab)
	}

	assert.Equal(t, 1, c.CountTeam())
	assert.Equal(t, 2, c.CountDrivers())
	assert.Equal(t, 1, c.CountUsers())
	assert.Equal(t, 1, c.CountRequests())
}

func TestStartEditSeedsDraft(t *testing.T) {
	c := newTestConsole(t, &fakeAdminAPI{users: sampleUsers()})

	c.StartEdit(sampleUsers()[1])
	require.NotNil(t, c.EditingUser())
	assert.Equal(t, int64(2), c.EditingUser().ID)
	assert.Equal(t, "Sedan", c.EditModel().VehicleModel)
	assert.Equal(t, 4, c.EditModel().Capacity)

	// a zero capacity seeds to the minimum of one seat
	c.StartEdit(sampleUsers()[2])
	assert.Equal(t, 1, c.EditModel().Capacity)
}

func TestSetTabDiscardsEditAndSelection(t *testing.T) {
	c := newTestConsole(t, &fakeAdminAPI{users: sampleUsers()})

	c.StartEdit(sampleUsers()[1])
	c.Select(2)
	c.SetTab(TabUsers)

	assert.Nil(t, c.EditingUser())
	assert.Zero(t, c.Selection())
}

func TestSaveEditFailureKeepsPanelOpen(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers(), updateErr: assert.AnError}
	c := newTestConsole(t, api)

	c.StartEdit(sampleUsers()[1])
	c.EditModel().Name = "Renamed"

	require.Error(t, c.SaveEdit(context.Background()))
	assert.Equal(t, "Failed to save user changes", c.Error())
	require.NotNil(t, c.EditingUser())
	assert.Equal(t, "Renamed", c.EditModel().Name)
	assert.Equal(t, 1, api.calls("users"))
}

func TestSaveEditSuccessClosesPanelAndRefreshes(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	c := newTestConsole(t, api)

	c.StartEdit(sampleUsers()[1])
	c.EditModel().Name = "Renamed"

	require.NoError(t, c.SaveEdit(context.Background()))
	assert.Nil(t, c.EditingUser())
	require.Len(t, api.updates, 1)
	assert.Equal(t, "Renamed", api.updates[0].Name)

	// one initial round plus one post-save refresh
	assert.Equal(t, 2, api.calls("users"))
	assert.Equal(t, 2, api.calls("rides"))
}

func TestSaveEditWithoutOpenPanel(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	c := newTestConsole(t, api)

	assert.True(t, util.IsValidation(c.SaveEdit(context.Background())))
	assert.Zero(t, api.calls("update"))
}

func TestSetBlockedRefreshesOnlyOnSuccess(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	c := newTestConsole(t, api)

	require.NoError(t, c.SetBlocked(context.Background(), 4, true))
	assert.Equal(t, 2, api.calls("users"))

	api.mu.Lock()
	api.blockErr = assert.AnError
	api.mu.Unlock()

	require.Error(t, c.SetBlocked(context.Background(), 4, false))
	assert.Equal(t, "Failed to update user", c.Error())
	assert.Equal(t, 2, api.calls("users"))
}

func TestVerifyDriverRefreshesOnSuccess(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	c := newTestConsole(t, api)

	require.NoError(t, c.VerifyDriver(context.Background(), 3))
	assert.Equal(t, 1, api.calls("verify"))
	assert.Equal(t, 2, api.calls("users"))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	c := newTestConsole(t, api)

	c.RequestDelete(context.Background(), 4)
	assert.Equal(t, int64(4), c.PendingDelete())
	assert.Zero(t, api.calls("delete"))

	c.CancelDelete()
	assert.Zero(t, c.PendingDelete())
	assert.True(t, util.IsValidation(c.ConfirmDelete(context.Background())))
	assert.Zero(t, api.calls("delete"))
}

func TestConfirmDeleteRefreshesAndShowsBanner(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.EventType
	for _, et := range []events.EventType{events.EventDeleteRequested, events.EventDeleteConfirmed, events.EventBannerShown} {
		eventType := et
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			published = append(published, e.Type)
			return nil
		})
	}

	c, err := NewConsole(context.Background(), api, storeWithRole(t, domain.RoleAdmin),
		&recordingNav{}, dispatcher, 30*time.Millisecond, zap.NewNop())
	require.NoError(t, err)

	c.RequestDelete(context.Background(), 4)
	require.NoError(t, c.ConfirmDelete(context.Background()))

	assert.Equal(t, []int64{4}, api.deleted)
	assert.Equal(t, 2, api.calls("users"))
	assert.Equal(t, "User deleted", c.Banner())
	assert.Equal(t, []events.EventType{
		events.EventDeleteRequested, events.EventDeleteConfirmed, events.EventBannerShown,
	}, published)

	// the banner clears itself after its TTL
	assert.Eventually(t, func() bool { return c.Banner() == "" }, time.Second, 5*time.Millisecond)
}

func TestConfirmDeleteFailureShowsNoBanner(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers(), deleteErr: assert.AnError}
	c := newTestConsole(t, api)

	c.RequestDelete(context.Background(), 4)
	require.Error(t, c.ConfirmDelete(context.Background()))

	assert.Equal(t, "Failed to delete user", c.Error())
	assert.Empty(t, c.Banner())
	assert.Equal(t, 1, api.calls("users"))
}

func TestToolbarEditAndDelete(t *testing.T) {
	api := &fakeAdminAPI{users: sampleUsers()}
	c := newTestConsole(t, api)

	// no selection means no action
	c.StartEditFromToolbar()
	assert.Nil(t, c.EditingUser())
	c.DeleteFromToolbar(context.Background())
	assert.Zero(t, c.PendingDelete())

	c.Select(2)
	c.StartEditFromToolbar()
	require.NotNil(t, c.EditingUser())
	assert.Equal(t, int64(2), c.EditingUser().ID)

	c.DeleteFromToolbar(context.Background())
	assert.Equal(t, int64(2), c.PendingDelete())
}

func TestToolbarEditIgnoresVanishedSelection(t *testing.T) {
	c := newTestConsole(t, &fakeAdminAPI{users: sampleUsers()})

	c.Select(99)
	c.StartEditFromToolbar()
	assert.Nil(t, c.EditingUser())
}
