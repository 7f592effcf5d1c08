package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spec-kit/rideshare-client/internal/domain"
)

// RegisterRequest carries the registration form. Vehicle fields are
// only serialized for driver accounts.
type RegisterRequest struct {
	Email        string
	Password     string
	Name         string
	Phone        string
	Role         domain.Role
	VehicleModel string
	LicensePlate string
	Capacity     int
}

// PostRideRequest carries a driver's ride offer. The coordinate fields
// are optional and omitted from the payload when unset.
type PostRideRequest struct {
	Source         string
	Destination    string
	DepartureTime  string
	AvailableSeats int
	FarePerSeat    float64
	SourceLat      *float64
	SourceLng      *float64
	DestLat        *float64
	DestLng        *float64
}

// SearchQuery composes ride search filters. Source and Destination are
// required; the remaining filters are appended only when present.
type SearchQuery struct {
	Source       string
	Destination  string
	Date         string
	MinFare      *float64
	MaxFare      *float64
	VehicleModel string
}

// Encode renders the query string, leaving absent filters out entirely.
func (q SearchQuery) Encode() string {
	params := url.Values{}
	params.Set("source", q.Source)
	params.Set("destination", q.Destination)
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	if q.MinFare != nil {
		params.Set("minFare", strconv.FormatFloat(*q.MinFare, 'f', -1, 64))
	}
	if q.MaxFare != nil {
		params.Set("maxFare", strconv.FormatFloat(*q.MaxFare, 'f', -1, 64))
	}
	if q.VehicleModel != "" {
		params.Set("vehicleModel", q.VehicleModel)
	}
	return params.Encode()
}

// Login authenticates with email and password.
func (g *Gateway) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	body := NewBody().Set("email", email).Set("password", password)
	var identity domain.Identity
	if err := g.Post(ctx, "/api/auth/login", body, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Register creates an account, serializing driver fields only when the
// role calls for them.
func (g *Gateway) Register(ctx context.Context, req RegisterRequest) (*domain.Identity, error) {
	body := NewBody().
		Set("email", req.Email).
		Set("password", req.Password).
		Set("name", req.Name).
		Set("phone", req.Phone).
		Set("role", req.Role.Short())
	if req.Role == domain.RoleDriver {
		body.Set("vehicleModel", req.VehicleModel).
			Set("licensePlate", req.LicensePlate).
			Set("capacity", req.Capacity)
	}

	var identity domain.Identity
	if err := g.Post(ctx, "/api/auth/register", body, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// ListRides fetches all currently available rides.
func (g *Gateway) ListRides(ctx context.Context) ([]domain.Ride, error) {
	var rides []domain.Ride
	if err := g.Get(ctx, "/api/rides", &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

// SearchRides fetches rides matching the query.
func (g *Gateway) SearchRides(ctx context.Context, q SearchQuery) ([]domain.Ride, error) {
	var rides []domain.Ride
	if err := g.Get(ctx, "/api/rides/search?"+q.Encode(), &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

// PostRide publishes a driver's ride offer.
func (g *Gateway) PostRide(ctx context.Context, req PostRideRequest) (*domain.Ride, error) {
	body := NewBody().
		Set("source", req.Source).
		Set("destination", req.Destination).
		Set("departureTime", req.DepartureTime).
		Set("availableSeats", req.AvailableSeats).
		Set("farePerSeat", req.FarePerSeat)
	if req.SourceLat != nil {
		body.Set("sourceLat", *req.SourceLat)
	}
	if req.SourceLng != nil {
		body.Set("sourceLng", *req.SourceLng)
	}
	if req.DestLat != nil {
		body.Set("destLat", *req.DestLat)
	}
	if req.DestLng != nil {
		body.Set("destLng", *req.DestLng)
	}

	var ride domain.Ride
	if err := g.Post(ctx, "/api/rides/post", body, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// BookRide books seats on a ride for the current passenger.
func (g *Gateway) BookRide(ctx context.Context, rideID int64, seats int) (*domain.Booking, error) {
	body := NewBody().Set("rideId", rideID).Set("seatsBooked", seats)
	var booking domain.Booking
	if err := g.Post(ctx, "/api/bookings/book", body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// AdminListUsers fetches every account for moderation.
func (g *Gateway) AdminListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	var users []domain.AdminUser
	if err := g.Get(ctx, "/api/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminListRides fetches every ride for moderation.
func (g *Gateway) AdminListRides(ctx context.Context) ([]domain.Ride, error) {
	var rides []domain.Ride
	if err := g.Get(ctx, "/api/admin/rides", &rides); err != nil {
		return nil, err
	}
	return rides, nil
}

// AdminListBookings fetches every booking for moderation.
func (g *Gateway) AdminListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := g.Get(ctx, "/api/admin/bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AdminListPayments fetches every payment for moderation.
func (g *Gateway) AdminListPayments(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	if err := g.Get(ctx, "/api/admin/payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// BlockUser sets the blocked flag on a user.
func (g *Gateway) BlockUser(ctx context.Context, id int64, blocked bool) error {
	path := fmt.Sprintf("/api/admin/users/%d/block?blocked=%t", id, blocked)
	return g.Post(ctx, path, nil, nil)
}

// VerifyDriver marks a driver account as verified.
func (g *Gateway) VerifyDriver(ctx context.Context, id int64) error {
	return g.Post(ctx, fmt.Sprintf("/api/admin/users/%d/verify-driver", id), nil, nil)
}

// UpdateUser replaces the moderated fields of a user with the edit draft.
func (g *Gateway) UpdateUser(ctx context.Context, id int64, edit domain.UserEdit) error {
	return g.Put(ctx, fmt.Sprintf("/api/admin/users/%d", id), edit, nil)
}

// DeleteUser removes a user account.
func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	return g.Delete(ctx, fmt.Sprintf("/api/admin/users/%d", id))
}
