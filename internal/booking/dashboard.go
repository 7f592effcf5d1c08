package booking

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/internal/state"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

// Phase is the dashboard load state. Any action re-enters Loading.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

// RideAPI is the slice of the gateway the dashboard needs.
type RideAPI interface {
	ListRides(ctx context.Context) ([]domain.Ride, error)
	SearchRides(ctx context.Context, q gateway.SearchQuery) ([]domain.Ride, error)
	BookRide(ctx context.Context, rideID int64, seats int) (*domain.Booking, error)
}

// Dashboard runs the ride search and booking workflow for a logged-in
// user. The server owns seat counts; after a booking the dashboard
// re-runs its last query instead of decrementing locally.
type Dashboard struct {
	api    RideAPI
	store  *session.Store
	nav    guard.Navigator
	logger *zap.Logger

	phase  *state.Signal[Phase]
	rides  *state.Signal[[]domain.Ride]
	errMsg *state.Signal[string]

	mu         sync.Mutex
	seats      map[int64]int
	lastSearch *gateway.SearchQuery

	// searchSeq orders overlapping list responses so a stale result
	// can never overwrite a newer one.
	searchSeq atomic.Uint64
}

// NewDashboard guards access and issues the initial ride load. A
// missing session redirects to login and returns ErrRedirected without
// touching the network.
func NewDashboard(ctx context.Context, api RideAPI, store *session.Store, nav guard.Navigator, logger *zap.Logger) (*Dashboard, error) {
	if _, err := guard.RequireLogin(store, nav, "/login"); err != nil {
		return nil, err
	}

	d := &Dashboard{
		api:    api,
		store:  store,
		nav:    nav,
		logger: logger,
		phase:  state.NewSignal(PhaseIdle),
		rides:  state.NewSignal[[]domain.Ride](nil),
		errMsg: state.NewSignal(""),
		seats:  make(map[int64]int),
	}
	d.Load(ctx)
	return d, nil
}

// Load fetches all available rides, clearing any previous search.
func (d *Dashboard) Load(ctx context.Context) {
	d.mu.Lock()
	d.lastSearch = nil
	d.mu.Unlock()

	seq := d.searchSeq.Add(1)
	d.phase.Set(PhaseLoading)

	rides, err := d.api.ListRides(ctx)
	d.apply(seq, rides, err)
}

// Search validates the query locally and replaces the ride list with
// the results. Empty source or destination is a no-op: no request fires.
func (d *Dashboard) Search(ctx context.Context, q gateway.SearchQuery) error {
	if q.Source == "" || q.Destination == "" {
		return util.NewValidationError("Source and destination are required.")
	}

	d.mu.Lock()
	d.lastSearch = &q
	d.mu.Unlock()

	seq := d.searchSeq.Add(1)
	d.phase.Set(PhaseLoading)

	rides, err := d.api.SearchRides(ctx, q)
	d.apply(seq, rides, err)
	return nil
}

// apply installs a list response unless a newer request has started
// since. A failed call leaves the existing list untouched.
func (d *Dashboard) apply(seq uint64, rides []domain.Ride, err error) {
	if d.searchSeq.Load() != seq {
		d.logger.Debug("dropping stale ride list response")
		return
	}
	if err != nil {
		d.logger.Warn("ride list load failed", zap.Error(err))
		d.phase.Set(PhaseFailed)
		return
	}
	d.rides.Set(rides)
	d.phase.Set(PhaseLoaded)
}

// SetSeats records the seat quantity to book for a ride.
func (d *Dashboard) SetSeats(rideID int64, seats int) {
	d.mu.Lock()
	d.seats[rideID] = seats
	d.mu.Unlock()
}

// Book books the selected seat quantity (default 1) on a ride, then
// refreshes availability by re-running the last executed search, or the
// full list when no search has run. Non-positive quantities are
// rejected locally without a call.
func (d *Dashboard) Book(ctx context.Context, rideID int64) error {
	d.mu.Lock()
	seats, ok := d.seats[rideID]
	last := d.lastSearch
	d.mu.Unlock()
	if !ok {
		seats = 1
	}
	if seats <= 0 {
		return util.NewValidationError("Seat count must be positive.")
	}

	if _, err := d.api.BookRide(ctx, rideID, seats); err != nil {
		d.errMsg.Set(bookErrorMessage(err))
		return err
	}
	d.errMsg.Set("")

	if last != nil {
		return d.Search(ctx, *last)
	}
	d.Load(ctx)
	return nil
}

func bookErrorMessage(err error) string {
	if util.IsUnauthorized(err) {
		return "Unauthorized. Please login again."
	}
	return "Could not book the ride. Please try again."
}

// Rides returns the current ride list.
func (d *Dashboard) Rides() []domain.Ride {
	return d.rides.Get()
}

// Phase returns the current load state.
func (d *Dashboard) Phase() Phase {
	return d.phase.Get()
}

// Error returns the current booking error message.
func (d *Dashboard) Error() string {
	return d.errMsg.Get()
}

// LastSearch returns the query of the last executed search, nil when
// the list came from the unfiltered load.
func (d *Dashboard) LastSearch() *gateway.SearchQuery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSearch
}
