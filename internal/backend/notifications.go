package backend

import (
	"context"
	"net/http"

	"roomdesk/pkg/apperrors"
)

// ListNotifications returns notifications visible to the caller: admins see
// all of them, users only their own. The backend scopes the listing by the
// bearer token's role.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	err := c.do(ctx, call{
		resource: "notifications",
		method:   http.MethodGet,
		path:     "/notifications",
		out:      &notifications,
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// decideNotificationRequest is the body for PUT /notifications/{id}.
type decideNotificationRequest struct {
	Status string `json:"status"`
}

// DecideNotification approves or rejects a booking notification. The backend
// updates the linked booking and room as a side effect; callers must
// re-fetch, not patch local state. Admin only.
func (c *Client) DecideNotification(ctx context.Context, notificationID, status string) error {
	if status != StatusApproved && status != StatusRejected {
		return apperrors.New(apperrors.CodeValidation, "decision must be approved or rejected")
	}
	err := c.do(ctx, call{
		resource: "notifications",
		method:   http.MethodPut,
		path:     "/notifications/" + notificationID,
		json:     decideNotificationRequest{Status: status},
	})
	if err != nil {
		return err
	}
	if c.metrics != nil {
		c.metrics.IncrementNotificationsActed(status)
	}
	return nil
}
