package admin

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/events"
	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/internal/state"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

// Tab is one of the fixed moderation views over the admin data.
type Tab string

const (
	TabTeam     Tab = "team"
	TabDrivers  Tab = "drivers"
	TabUsers    Tab = "users"
	TabRides    Tab = "rides"
	TabRequests Tab = "requests"
)

// AdminAPI is the slice of the gateway the console needs.
type AdminAPI interface {
	AdminListUsers(ctx context.Context) ([]domain.AdminUser, error)
	AdminListRides(ctx context.Context) ([]domain.Ride, error)
	AdminListBookings(ctx context.Context) ([]domain.Booking, error)
	AdminListPayments(ctx context.Context) ([]domain.Payment, error)
	BlockUser(ctx context.Context, id int64, blocked bool) error
	VerifyDriver(ctx context.Context, id int64) error
	UpdateUser(ctx context.Context, id int64, edit domain.UserEdit) error
	DeleteUser(ctx context.Context, id int64) error
}

// Console drives the admin moderation dashboard: four independent entity
// lists, tab filtering, edit-in-place, and destructive actions behind an
// explicit confirmation step. Mutations never patch the lists locally;
// every successful change triggers a full refresh so concurrent admin
// edits cannot drift the view.
type Console struct {
	api        AdminAPI
	store      *session.Store
	nav        guard.Navigator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bannerTTL  time.Duration

	users    *state.Signal[[]domain.AdminUser]
	rides    *state.Signal[[]domain.Ride]
	bookings *state.Signal[[]domain.Booking]
	payments *state.Signal[[]domain.Payment]
	errMsg   *state.Signal[string]
	banner   *state.Signal[string]

	mu            sync.Mutex
	activeTab     Tab
	editingUser   *domain.AdminUser
	editModel     domain.UserEdit
	selection     int64
	pendingDelete int64
}

// NewConsole verifies the admin role and issues the four initial list
// loads. Non-admin visitors are redirected before any call fires.
func NewConsole(ctx context.Context, api AdminAPI, store *session.Store, nav guard.Navigator, dispatcher events.Dispatcher, bannerTTL time.Duration, logger *zap.Logger) (*Console, error) {
	if _, err := guard.RequireRole(store, domain.RoleAdmin, nav, "/"); err != nil {
		return nil, err
	}

	c := &Console{
		api:        api,
		store:      store,
		nav:        nav,
		dispatcher: dispatcher,
		logger:     logger,
		bannerTTL:  bannerTTL,
		users:      state.NewSignal[[]domain.AdminUser](nil),
		rides:      state.NewSignal[[]domain.Ride](nil),
		bookings:   state.NewSignal[[]domain.Booking](nil),
		payments:   state.NewSignal[[]domain.Payment](nil),
		errMsg:     state.NewSignal(""),
		banner:     state.NewSignal(""),
		activeTab:  TabTeam,
	}
	c.RefreshAll(ctx)
	return c, nil
}

// RefreshAll reloads the four entity lists. The calls are independent:
// they run concurrently, land in their own slots in whatever order they
// resolve, and one failure does not block the others. Only a users
// failure raises the error banner, since users drive the tab counts.
func (c *Console) RefreshAll(ctx context.Context) {
	c.errMsg.Set("")

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		if users, err := c.api.AdminListUsers(ctx); err != nil {
			c.logger.Warn("admin users load failed", zap.Error(err))
			c.errMsg.Set("Failed to load users")
		} else {
			c.users.Set(users)
		}
	}()
	go func() {
		defer wg.Done()
		if rides, err := c.api.AdminListRides(ctx); err != nil {
			c.logger.Warn("admin rides load failed", zap.Error(err))
		} else {
			c.rides.Set(rides)
		}
	}()
	go func() {
		defer wg.Done()
		if bookings, err := c.api.AdminListBookings(ctx); err != nil {
			c.logger.Warn("admin bookings load failed", zap.Error(err))
		} else {
			c.bookings.Set(bookings)
		}
	}()
	go func() {
		defer wg.Done()
		if payments, err := c.api.AdminListPayments(ctx); err != nil {
			c.logger.Warn("admin payments load failed", zap.Error(err))
		} else {
			c.payments.Set(payments)
		}
	}()

	wg.Wait()
}

// SetTab switches the active view, discarding any in-progress edit and
// the toolbar selection.
func (c *Console) SetTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeTab = tab
	c.editingUser = nil
	c.selection = 0
}

// ActiveTab returns the current view.
func (c *Console) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// DisplayUsers filters the user list for the active tab. The rides tab
// shows no users.
func (c *Console) DisplayUsers() []domain.AdminUser {
	c.mu.Lock()
	tab := c.activeTab
	c.mu.Unlock()

	switch tab {
	case TabTeam:
		return filterUsers(c.users.Get(), func(u domain.AdminUser) bool { return u.Role == domain.RoleAdmin })
	case TabDrivers:
		return filterUsers(c.users.Get(), func(u domain.AdminUser) bool { return u.Role == domain.RoleDriver })
	case TabUsers:
		return filterUsers(c.users.Get(), func(u domain.AdminUser) bool { return u.Role == domain.RolePassenger })
	case TabRequests:
		return filterUsers(c.users.Get(), func(u domain.AdminUser) bool {
			return u.Role == domain.RoleDriver && !u.DriverVerified
		})
	default:
		return nil
	}
}

func filterUsers(users []domain.AdminUser, keep func(domain.AdminUser) bool) []domain.AdminUser {
	filtered := make([]domain.AdminUser, 0, len(users))
	for _, u := range users {
		if keep(u) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// CountTeam counts admin accounts.
func (c *Console) CountTeam() int {
	return countUsers(c.users.Get(), func(u domain.AdminUser) bool { return u.Role == domain.RoleAdmin })
}

// CountDrivers counts driver accounts.
func (c *Console) CountDrivers() int {
	return countUsers(c.users.Get(), func(u domain.AdminUser) bool { return u.Role == domain.RoleDriver })
}

// CountUsers counts passenger accounts.
func (c *Console) CountUsers() int {
	return countUsers(c.users.Get(), func(u domain.AdminUser) bool { return u.Role == domain.RolePassenger })
}

// CountRequests counts unverified driver accounts.
func (c *Console) CountRequests() int {
	return countUsers(c.users.Get(), func(u domain.AdminUser) bool {
		return u.Role == domain.RoleDriver && !u.DriverVerified
	})
}

// CountRides counts all rides.
func (c *Console) CountRides() int {
	return len(c.rides.Get())
}

func countUsers(users []domain.AdminUser, keep func(domain.AdminUser) bool) int {
	count := 0
	for _, u := range users {
		if keep(u) {
			count++
		}
	}
	return count
}

// StartEdit opens the edit panel for a user, seeding the draft from the
// record. Starting a new edit discards any unsaved prior edit.
func (c *Console) StartEdit(user domain.AdminUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := user
	c.editingUser = &u
	c.editModel = domain.NewUserEdit(user)
}

// EditingUser returns the user under edit, nil when the panel is closed.
func (c *Console) EditingUser() *domain.AdminUser {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingUser
}

// EditModel returns a pointer to the live draft for in-place mutation.
func (c *Console) EditModel() *domain.UserEdit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &c.editModel
}

// CancelEdit closes the edit panel without saving.
func (c *Console) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editingUser = nil
}

// SaveEdit sends the full draft. Success closes the panel and refreshes
// all four lists; failure keeps the panel open with the draft intact so
// the admin can retry or cancel.
func (c *Console) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	target := c.editingUser
	edit := c.editModel
	c.mu.Unlock()
	if target == nil {
		return util.NewValidationError("No user is being edited.")
	}

	if err := c.api.UpdateUser(ctx, target.ID, edit); err != nil {
		c.errMsg.Set("Failed to save user changes")
		return err
	}

	c.mu.Lock()
	c.editingUser = nil
	c.mu.Unlock()
	c.RefreshAll(ctx)
	return nil
}

// SetBlocked toggles the blocked flag. No optimistic local update: the
// displayed list only changes through the refresh that follows success.
func (c *Console) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	if err := c.api.BlockUser(ctx, id, blocked); err != nil {
		c.errMsg.Set("Failed to update user")
		return err
	}
	c.RefreshAll(ctx)
	return nil
}

// VerifyDriver approves a driver account, then refreshes.
func (c *Console) VerifyDriver(ctx context.Context, id int64) error {
	if err := c.api.VerifyDriver(ctx, id); err != nil {
		c.errMsg.Set("Failed to verify driver")
		return err
	}
	c.RefreshAll(ctx)
	return nil
}

// RequestDelete records the delete target and asks for confirmation.
// No call is issued until ConfirmDelete.
func (c *Console) RequestDelete(ctx context.Context, id int64) {
	c.mu.Lock()
	c.pendingDelete = id
	c.mu.Unlock()

	c.publish(ctx, events.Event{
		Type:    events.EventDeleteRequested,
		Payload: events.DeleteRequestedPayload{UserID: id},
	})
}

// PendingDelete returns the id awaiting confirmation, 0 when none.
func (c *Console) PendingDelete() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete
}

// CancelDelete drops the pending delete without issuing a call.
func (c *Console) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = 0
}

// ConfirmDelete issues the delete for the pending target. Success
// refreshes the lists and shows a transient banner; failure keeps a
// persistent error and shows no banner.
func (c *Console) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	id := c.pendingDelete
	c.pendingDelete = 0
	c.mu.Unlock()
	if id == 0 {
		return util.NewValidationError("No delete is pending confirmation.")
	}

	if err := c.api.DeleteUser(ctx, id); err != nil {
		c.errMsg.Set("Failed to delete user")
		return err
	}

	c.publish(ctx, events.Event{
		Type:    events.EventDeleteConfirmed,
		Payload: events.DeleteConfirmedPayload{UserID: id},
	})
	c.RefreshAll(ctx)
	c.showBanner(ctx, "User deleted")
	return nil
}

// Select records the toolbar selection.
func (c *Console) Select(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = id
}

// Selection returns the selected id, 0 when nothing is selected.
func (c *Console) Selection() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// StartEditFromToolbar opens the edit panel for the selected user.
// No-op when nothing is selected or the selection is gone.
func (c *Console) StartEditFromToolbar() {
	c.mu.Lock()
	id := c.selection
	c.mu.Unlock()
	if id == 0 {
		return
	}
	for _, u := range c.users.Get() {
		if u.ID == id {
			c.StartEdit(u)
			return
		}
	}
}

// DeleteFromToolbar requests deletion of the selected user. No-op when
// nothing is selected.
func (c *Console) DeleteFromToolbar(ctx context.Context) {
	c.mu.Lock()
	id := c.selection
	c.mu.Unlock()
	if id == 0 {
		return
	}
	c.RequestDelete(ctx, id)
}

// showBanner displays a transient confirmation that self-clears.
func (c *Console) showBanner(ctx context.Context, message string) {
	c.banner.Set(message)
	c.publish(ctx, events.Event{
		Type:    events.EventBannerShown,
		Payload: events.BannerPayload{Message: message},
	})

	time.AfterFunc(c.bannerTTL, func() {
		c.banner.Set("")
		c.publish(context.Background(), events.Event{
			Type:    events.EventBannerCleared,
			Payload: events.BannerPayload{Message: message},
		})
	})
}

// Users returns the latest loaded user list.
func (c *Console) Users() []domain.AdminUser {
	return c.users.Get()
}

// Rides returns the latest loaded ride list.
func (c *Console) Rides() []domain.Ride {
	return c.rides.Get()
}

// Bookings returns the latest loaded booking list.
func (c *Console) Bookings() []domain.Booking {
	return c.bookings.Get()
}

// Payments returns the latest loaded payment list.
func (c *Console) Payments() []domain.Payment {
	return c.payments.Get()
}

// Error returns the persistent error banner, empty when healthy.
func (c *Console) Error() string {
	return c.errMsg.Get()
}

// Banner returns the transient confirmation banner.
func (c *Console) Banner() string {
	return c.banner.Get()
}

func (c *Console) publish(ctx context.Context, event events.Event) {
	if c.dispatcher == nil {
		return
	}
	_ = c.dispatcher.Publish(ctx, event)
}
