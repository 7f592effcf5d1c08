package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/gateway"
	"github.com/spec-kit/rideshare-client/internal/guard"
	"github.com/spec-kit/rideshare-client/internal/session"
	"github.com/spec-kit/rideshare-client/internal/state"
	"github.com/spec-kit/rideshare-client/pkg/util"
)

// PostRideAPI is the slice of the gateway the post-ride page needs.
type PostRideAPI interface {
	PostRide(ctx context.Context, req gateway.PostRideRequest) (*domain.Ride, error)
}

// PostRideForm carries the raw ride offer inputs. Date is yyyy-MM-dd
// and Time is HH:mm; they are composed into the wire departure format.
type PostRideForm struct {
	Source         string
	Destination    string
	Date           string
	Time           string
	AvailableSeats int
	FarePerSeat    float64
	SourceLat      *float64
	SourceLng      *float64
	DestLat        *float64
	DestLng        *float64
}

// PostRidePage lets a verified driver publish a ride offer.
type PostRidePage struct {
	api     PostRideAPI
	store   *session.Store
	nav     guard.Navigator
	logger  *zap.Logger
	loading *state.Signal[bool]
	errMsg  *state.Signal[string]
	infoMsg *state.Signal[string]
}

// NewPostRidePage guards access: only drivers may post rides, everyone
// else is sent back to the dashboard before any call fires.
func NewPostRidePage(api PostRideAPI, store *session.Store, nav guard.Navigator, logger *zap.Logger) (*PostRidePage, error) {
	if _, err := guard.RequireRole(store, domain.RoleDriver, nav, "/app"); err != nil {
		return nil, err
	}
	return &PostRidePage{
		api:     api,
		store:   store,
		nav:     nav,
		logger:  logger,
		loading: state.NewSignal(false),
		errMsg:  state.NewSignal(""),
		infoMsg: state.NewSignal(""),
	}, nil
}

// Submit validates the offer locally and posts it. Coordinates are only
// sent when supplied.
func (p *PostRidePage) Submit(ctx context.Context, form PostRideForm) error {
	p.errMsg.Set("")
	p.infoMsg.Set("")

	if form.Source == "" || form.Destination == "" || form.Date == "" || form.Time == "" {
		err := util.NewValidationError("Please provide source, destination, date and time.")
		p.errMsg.Set(util.ToDomainError(err).Message)
		return err
	}
	if form.AvailableSeats <= 0 {
		err := util.NewValidationError("Please provide a valid available seats count.")
		p.errMsg.Set(util.ToDomainError(err).Message)
		return err
	}

	p.loading.Set(true)
	defer p.loading.Set(false)

	req := gateway.PostRideRequest{
		Source:         form.Source,
		Destination:    form.Destination,
		DepartureTime:  fmt.Sprintf("%sT%s:00", form.Date, form.Time),
		AvailableSeats: form.AvailableSeats,
		FarePerSeat:    form.FarePerSeat,
		SourceLat:      form.SourceLat,
		SourceLng:      form.SourceLng,
		DestLat:        form.DestLat,
		DestLng:        form.DestLng,
	}
	if _, err := p.api.PostRide(ctx, req); err != nil {
		if util.IsUnauthorized(err) {
			p.errMsg.Set("Unauthorized. Please login as a driver.")
		} else {
			p.errMsg.Set("Could not post ride. Please try again.")
		}
		return err
	}

	p.infoMsg.Set("Ride posted successfully.")
	p.nav.NavigateTo("/app")
	return nil
}

// Error returns the current inline error message.
func (p *PostRidePage) Error() string {
	return p.errMsg.Get()
}

// Info returns the current info message.
func (p *PostRidePage) Info() string {
	return p.infoMsg.Get()
}

// Loading reports whether a post call is in flight.
func (p *PostRidePage) Loading() bool {
	return p.loading.Get()
}
