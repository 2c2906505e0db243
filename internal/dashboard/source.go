package dashboard

import (
	"context"

	"roomdesk/internal/backend"
)

// BookingRef is the minimal booking projection the aggregator counts over:
// identity plus status, nothing else.
type BookingRef struct {
	ID     string
	Status string
}

// SourceResult is one fetch from a booking source. NotificationCount is only
// meaningful for the notification-derived variant; the direct variant always
// reports zero.
type SourceResult struct {
	Bookings          []BookingRef
	NotificationCount int
}

// BookingSource abstracts where booking statuses come from. The backend does
// not expose an all-bookings listing to non-privileged callers, so the
// source is selected by role at construction time instead of branching
// inline at fetch time.
type BookingSource interface {
	Fetch(ctx context.Context) (SourceResult, error)
}

// DirectBookingSource reads the authenticated user's own bookings.
type DirectBookingSource struct {
	client *backend.Client
}

func NewDirectBookingSource(client *backend.Client) *DirectBookingSource {
	return &DirectBookingSource{client: client}
}

func (s *DirectBookingSource) Fetch(ctx context.Context) (SourceResult, error) {
	bookings, err := s.client.ListMyBookings(ctx)
	if err != nil {
		return SourceResult{}, err
	}
	refs := make([]BookingRef, 0, len(bookings))
	for _, b := range bookings {
		refs = append(refs, BookingRef{ID: b.ID, Status: b.Status})
	}
	return SourceResult{Bookings: refs}, nil
}

// NotificationDerivedBookingSource reconstructs booking statuses from the
// admin's notification feed: notifications carrying a booking reference are
// projected to {id, status} pairs. A notification's status tracks its linked
// booking's approval state, which is what makes the projection sound.
type NotificationDerivedBookingSource struct {
	client *backend.Client
}

func NewNotificationDerivedBookingSource(client *backend.Client) *NotificationDerivedBookingSource {
	return &NotificationDerivedBookingSource{client: client}
}

func (s *NotificationDerivedBookingSource) Fetch(ctx context.Context) (SourceResult, error) {
	notifications, err := s.client.ListNotifications(ctx)
	if err != nil {
		return SourceResult{}, err
	}
	refs := make([]BookingRef, 0, len(notifications))
	for _, n := range notifications {
		if n.BookingID == "" {
			continue
		}
		refs = append(refs, BookingRef{ID: n.BookingID, Status: n.Status})
	}
	return SourceResult{
		Bookings:          refs,
		NotificationCount: len(notifications),
	}, nil
}

// SourceForRole picks the booking source variant for the given role.
func SourceForRole(role string, client *backend.Client) BookingSource {
	if role == backend.RoleAdmin {
		return NewNotificationDerivedBookingSource(client)
	}
	return NewDirectBookingSource(client)
}

// Verify interfaces are satisfied.
var (
	_ BookingSource = (*DirectBookingSource)(nil)
	_ BookingSource = (*NotificationDerivedBookingSource)(nil)
)
