package domain

// Ride is a posted ride offer. availableSeats is decremented
// server-side on booking; clients reload instead of mutating it.
type Ride struct {
	ID             int64   `json:"id"`
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	AvailableSeats int     `json:"availableSeats"`
	FarePerSeat    float64 `json:"farePerSeat"`
}

// Booking ties a passenger to a ride with a seat count.
type Booking struct {
	ID          int64     `json:"id"`
	SeatsBooked int       `json:"seatsBooked"`
	Status      string    `json:"status"`
	Passenger   AdminUser `json:"passenger"`
	Ride        Ride      `json:"ride"`
}

// Payment is read-only from the client's perspective.
type Payment struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	Booking   Booking `json:"booking"`
}
