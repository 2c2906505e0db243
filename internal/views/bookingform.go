package views

import (
	"context"
	"log/slog"
	"sync"

	"roomdesk/internal/backend"
	"roomdesk/internal/booking"
	"roomdesk/pkg/apperrors"
)

// BookingForm drives the reservation form: a list of available rooms, a
// start/end date pair, and a derived duration. Duration recomputes on every
// date change and always overwrites a manual override; an inverted date
// range leaves the previous duration in place and blocks submission.
type BookingForm struct {
	client *backend.Client
	logger *slog.Logger

	mu         sync.Mutex
	rooms      []backend.Room
	roomID     string
	startDate  string
	endDate    string
	duration   int
	validation string
}

// BookingFormState is the renderable snapshot of the form.
type BookingFormState struct {
	Rooms      []backend.Room `json:"rooms"`
	RoomID     string         `json:"roomId"`
	StartDate  string         `json:"startDate"`
	EndDate    string         `json:"endDate"`
	Duration   int            `json:"duration"`
	Validation string         `json:"validation,omitempty"`
}

func NewBookingForm(client *backend.Client, logger *slog.Logger) *BookingForm {
	return &BookingForm{client: client, logger: logger, duration: 1}
}

// Load fetches the rooms currently open for booking. Occupied and
// maintenance rooms are not offered.
func (f *BookingForm) Load(ctx context.Context) error {
	rooms, err := f.client.ListAvailableRooms(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.rooms = rooms
	f.mu.Unlock()
	return nil
}

// SelectRoom stores the chosen room.
func (f *BookingForm) SelectRoom(roomID string) {
	f.mu.Lock()
	f.roomID = roomID
	f.mu.Unlock()
}

// SetDates updates the date pair and recomputes the duration. On an
// ordering violation the stored duration is left untouched, the validation
// message is set, and the error is returned so the caller can render it
// inline. Incomplete pairs are stored without validation.
func (f *BookingForm) SetDates(startDate, endDate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.startDate = startDate
	f.endDate = endDate
	if startDate == "" || endDate == "" {
		f.validation = ""
		return nil
	}

	duration, err := booking.DurationFromStrings(startDate, endDate)
	if err != nil {
		f.validation = err.Error()
		return err
	}
	f.duration = duration
	f.validation = ""
	return nil
}

// SetDuration lets the user override the derived duration. The next date
// change recomputes and overwrites it.
func (f *BookingForm) SetDuration(months int) error {
	if months < 1 {
		return apperrors.New(apperrors.CodeValidation, "duration must be at least one month")
	}
	f.mu.Lock()
	f.duration = months
	f.mu.Unlock()
	return nil
}

// State returns the current form snapshot.
func (f *BookingForm) State() BookingFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	rooms := make([]backend.Room, len(f.rooms))
	copy(rooms, f.rooms)
	return BookingFormState{
		Rooms:      rooms,
		RoomID:     f.roomID,
		StartDate:  f.startDate,
		EndDate:    f.endDate,
		Duration:   f.duration,
		Validation: f.validation,
	}
}

// Submit sends the booking request with the duration currently on the form:
// the auto-derived value, or a later manual override that no date change has
// overwritten since. Client-side validation failures block before any
// network call; a backend rejection surfaces its detail message. After a
// successful submission the form resets and the room list is re-fetched,
// since the chosen room may no longer be available.
func (f *BookingForm) Submit(ctx context.Context) ([]Feedback, error) {
	f.mu.Lock()
	roomID, startDate, endDate := f.roomID, f.startDate, f.endDate
	duration := f.duration
	validation := f.validation
	f.mu.Unlock()

	if roomID == "" || startDate == "" || endDate == "" {
		err := apperrors.New(apperrors.CodeValidation, "room, start date and end date are required")
		return []Feedback{failure(err)}, err
	}
	if validation != "" {
		err := apperrors.New(apperrors.CodeValidation, validation)
		return []Feedback{failure(err)}, err
	}
	if duration < 1 {
		err := apperrors.New(apperrors.CodeValidation, "duration must be at least one month")
		return []Feedback{failure(err)}, err
	}

	_, err := f.client.CreateBooking(ctx, backend.CreateBookingRequest{
		RoomID:    roomID,
		StartDate: startDate,
		EndDate:   endDate,
		Duration:  duration,
	})
	if err != nil {
		return []Feedback{failure(err)}, err
	}

	f.mu.Lock()
	f.roomID = ""
	f.startDate = ""
	f.endDate = ""
	f.duration = 1
	f.mu.Unlock()

	if err := f.Load(ctx); err != nil {
		// The booking itself succeeded; a failed room refresh only leaves
		// the previous list on screen.
		f.logger.Warn("room list refresh after booking failed", "error", err)
	}
	return []Feedback{success(MsgBookingCreated)}, nil
}
