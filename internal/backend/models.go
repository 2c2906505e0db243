package backend

// Entity shapes mirror the booking backend's REST payloads. All entities are
// owned and persisted by the backend; this layer holds transient read-derived
// copies only and re-fetches after every mutation it triggers.

// Room statuses as reported by the backend.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Booking and notification statuses.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Roles known to the backend.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Room is a bookable unit.
type Room struct {
	ID         string  `json:"id"`
	RoomNumber string  `json:"room_number"`
	RoomType   string  `json:"room_type"`
	Capacity   int     `json:"capacity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// CreateRoomRequest is the body for POST /rooms.
type CreateRoomRequest struct {
	RoomNumber string  `json:"room_number"`
	RoomType   string  `json:"room_type"`
	Capacity   int     `json:"capacity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// Booking is a user's reservation of a room. Dates are calendar dates in
// YYYY-MM-DD form with no time-of-day component. Listings embed the booked
// room so views can derive totals without a second fetch.
type Booking struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Duration  int    `json:"duration"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	Room      *Room  `json:"room,omitempty"`
}

// CreateBookingRequest is the body for POST /bookings.
type CreateBookingRequest struct {
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Duration  int    `json:"duration"`
}

// Tenant is a person assigned to a room. Admin-only resource.
type Tenant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	RoomID    string `json:"room_id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateTenantRequest is the body for POST /tenants.
type CreateTenantRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	RoomID string `json:"room_id"`
}

// Notification tracks a booking-approval workflow step. BookingID is empty
// for notifications not tied to a booking; its status transitions as a side
// effect of an admin's approval decision.
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// User is the authenticated account as returned by GET /auth/me.
type User struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Token is the backend's authentication response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
