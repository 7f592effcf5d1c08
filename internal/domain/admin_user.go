package domain

// AdminUser is the moderation-console projection of an account.
// Vehicle fields are only present for drivers.
type AdminUser struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Role           Role   `json:"role"`
	VehicleModel   string `json:"vehicleModel,omitempty"`
	LicensePlate   string `json:"licensePlate,omitempty"`
	Capacity       int    `json:"capacity,omitempty"`
	Blocked        bool   `json:"blocked"`
	DriverVerified bool   `json:"driverVerified"`
}

// UserEdit is the mutable draft bound to at most one AdminUser during
// an in-place edit. The full draft is sent on save.
type UserEdit struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Role           Role   `json:"role"`
	Blocked        bool   `json:"blocked"`
	DriverVerified bool   `json:"driverVerified"`
	VehicleModel   string `json:"vehicleModel"`
	LicensePlate   string `json:"licensePlate"`
	Capacity       int    `json:"capacity"`
}

// NewUserEdit seeds an edit draft from the target user. Fields absent
// on the source record default to empty, capacity to 1.
func NewUserEdit(u AdminUser) UserEdit {
	edit := UserEdit{
		Name:           u.Name,
		Phone:          u.Phone,
		Role:           u.Role,
		Blocked:        u.Blocked,
		DriverVerified: u.DriverVerified,
		VehicleModel:   u.VehicleModel,
		LicensePlate:   u.LicensePlate,
		Capacity:       u.Capacity,
	}
	if edit.Capacity <= 0 {
		edit.Capacity = 1
	}
	return edit
}
