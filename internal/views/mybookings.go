package views

import (
	"context"
	"log/slog"
	"sync"

	"roomdesk/internal/backend"
	"roomdesk/internal/booking"
	"roomdesk/pkg/apperrors"
)

// MyBookings lists the user's own bookings and handles cancellation.
// Cancellation is restricted to pending bookings and requires an explicit
// confirmation; on any failure the last successful list stays on screen.
type MyBookings struct {
	client *backend.Client
	logger *slog.Logger

	mu       sync.Mutex
	bookings []backend.Booking
}

// BookingView is one booking decorated with its derived total cost.
type BookingView struct {
	backend.Booking
	TotalPrice float64 `json:"total_price"`
}

func NewMyBookings(client *backend.Client, logger *slog.Logger) *MyBookings {
	return &MyBookings{client: client, logger: logger}
}

// Refresh reloads the booking list. On failure the previous list is kept.
func (v *MyBookings) Refresh(ctx context.Context) error {
	bookings, err := v.client.ListMyBookings(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.bookings = bookings
	v.mu.Unlock()
	return nil
}

// Bookings returns the last successfully fetched list with total prices
// derived from each booking's room rate and duration.
func (v *MyBookings) Bookings() []BookingView {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]BookingView, 0, len(v.bookings))
	for _, b := range v.bookings {
		view := BookingView{Booking: b}
		if b.Room != nil {
			view.TotalPrice = booking.TotalPrice(b.Room.Price, b.Duration)
		}
		out = append(out, view)
	}
	return out
}

// Cancel cancels one of the user's pending bookings. The confirmed flag
// represents the explicit confirmation step that must precede a destructive
// action; without it no request is issued.
func (v *MyBookings) Cancel(ctx context.Context, bookingID string, confirmed bool) ([]Feedback, error) {
	if !confirmed {
		err := apperrors.New(apperrors.CodeValidation, "cancellation requires confirmation")
		return []Feedback{failure(err)}, err
	}

	v.mu.Lock()
	var target *backend.Booking
	for i := range v.bookings {
		if v.bookings[i].ID == bookingID {
			target = &v.bookings[i]
			break
		}
	}
	v.mu.Unlock()

	if target == nil {
		err := apperrors.New(apperrors.CodeNotFound, "booking not found")
		return []Feedback{failure(err)}, err
	}
	if target.Status != backend.StatusPending {
		err := apperrors.New(apperrors.CodeValidation, "only pending bookings can be cancelled")
		return []Feedback{failure(err)}, err
	}

	feedback := []Feedback{info(MsgCancellingBooking)}
	if err := v.client.CancelBooking(ctx, bookingID); err != nil {
		return append(feedback, failure(err)), err
	}

	if err := v.Refresh(ctx); err != nil {
		v.logger.Warn("booking list refresh after cancel failed", "error", err)
	}
	return append(feedback, success(MsgBookingCancelled)), nil
}
