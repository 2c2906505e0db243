package backend

import (
	"context"
	"net/http"
)

// ListMyBookings returns the authenticated user's bookings, each with its
// room embedded.
func (c *Client) ListMyBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := c.do(ctx, call{
		resource: "bookings",
		method:   http.MethodGet,
		path:     "/bookings/my",
		out:      &bookings,
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// createBookingResponse is the backend's creation acknowledgement.
type createBookingResponse struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// CreateBooking submits a booking request. The backend rejects it with a
// detail message when the room is missing or not available; that message is
// surfaced verbatim to the caller.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error) {
	var resp createBookingResponse
	err := c.do(ctx, call{
		resource: "bookings",
		method:   http.MethodPost,
		path:     "/bookings",
		json:     req,
		out:      &resp,
	})
	if err != nil {
		return "", err
	}
	if c.metrics != nil {
		c.metrics.IncrementBookingsSubmitted()
	}
	return resp.ID, nil
}

// CancelBooking cancels one of the user's own bookings.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	err := c.do(ctx, call{
		resource: "bookings",
		method:   http.MethodDelete,
		path:     "/bookings/" + bookingID,
	})
	if err != nil {
		return err
	}
	if c.metrics != nil {
		c.metrics.IncrementBookingsCancelled()
	}
	return nil
}
