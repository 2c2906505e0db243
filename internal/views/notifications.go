package views

import (
	"context"
	"log/slog"
	"sync"

	"roomdesk/internal/backend"
	"roomdesk/pkg/apperrors"
)

// Notifications lists booking notifications and, for administrators, acts
// on them. The backend scopes the listing by the bearer token's role; the
// admin-only guard here just saves a round trip that would be rejected.
type Notifications struct {
	client *backend.Client
	role   string
	logger *slog.Logger

	mu            sync.Mutex
	notifications []backend.Notification
}

func NewNotifications(client *backend.Client, role string, logger *slog.Logger) *Notifications {
	return &Notifications{client: client, role: role, logger: logger}
}

// Refresh reloads the notification list, keeping the previous one on
// failure.
func (v *Notifications) Refresh(ctx context.Context) error {
	notifications, err := v.client.ListNotifications(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.notifications = notifications
	v.mu.Unlock()
	return nil
}

// Notifications returns the last successfully fetched list.
func (v *Notifications) Notifications() []backend.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	notifications := make([]backend.Notification, len(v.notifications))
	copy(notifications, v.notifications)
	return notifications
}

// Decide approves or rejects a booking notification, then re-fetches so the
// updated booking and room state is reflected rather than patched locally.
func (v *Notifications) Decide(ctx context.Context, notificationID, status string) ([]Feedback, error) {
	if v.role != backend.RoleAdmin {
		err := apperrors.New(apperrors.CodeRequest, "only administrators can decide booking requests")
		return []Feedback{failure(err)}, err
	}

	var feedback []Feedback
	switch status {
	case backend.StatusApproved:
		feedback = append(feedback, info(MsgApprovingBooking))
	case backend.StatusRejected:
		feedback = append(feedback, info(MsgRejectingBooking))
	default:
		err := apperrors.New(apperrors.CodeValidation, "decision must be approved or rejected")
		return []Feedback{failure(err)}, err
	}

	if err := v.client.DecideNotification(ctx, notificationID, status); err != nil {
		return append(feedback, failure(err)), err
	}

	if err := v.Refresh(ctx); err != nil {
		v.logger.Warn("notification list refresh after decision failed", "error", err)
	}

	if status == backend.StatusApproved {
		return append(feedback, success(MsgBookingApproved)), nil
	}
	return append(feedback, success(MsgBookingRejected)), nil
}
