package views

// Feedback is one user-visible message produced by a controller action.
// Mutating operations report a transitional info message followed by a
// success or error outcome, in order.
type Feedback struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Canonical action messages.
const (
	MsgBookingCreated   = "Booking created successfully! Waiting for admin approval."
	MsgBookingCancelled = "Booking cancelled successfully!"
	MsgBookingApproved  = "Booking approved successfully!"
	MsgBookingRejected  = "Booking rejected successfully!"

	MsgCancellingBooking = "Cancelling booking..."
	MsgApprovingBooking  = "Approving booking..."
	MsgRejectingBooking  = "Rejecting booking..."

	MsgRoomCreated    = "Room created successfully!"
	MsgRoomDeleted    = "Room deleted successfully!"
	MsgTenantCreated  = "Tenant created successfully!"
	MsgCreatingRoom   = "Creating room..."
	MsgDeletingRoom   = "Deleting room..."
	MsgCreatingTenant = "Creating tenant..."
)

func info(text string) Feedback    { return Feedback{Level: LevelInfo, Text: text} }
func success(text string) Feedback { return Feedback{Level: LevelSuccess, Text: text} }
func failure(err error) Feedback   { return Feedback{Level: LevelError, Text: err.Error()} }
