package backend

import (
	"context"
	"net/http"
)

// ListRooms returns every room known to the backend.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var rooms []Room
	err := c.do(ctx, call{
		resource: "rooms",
		method:   http.MethodGet,
		path:     "/rooms",
		out:      &rooms,
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListAvailableRooms returns only rooms currently open for booking.
// Filtering happens client-side; the backend exposes no status query.
func (c *Client) ListAvailableRooms(ctx context.Context) ([]Room, error) {
	rooms, err := c.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Status == RoomAvailable {
			available = append(available, room)
		}
	}
	return available, nil
}

// CreateRoom registers a new room. Admin only; the backend enforces the role.
func (c *Client) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	var room Room
	err := c.do(ctx, call{
		resource: "rooms",
		method:   http.MethodPost,
		path:     "/rooms",
		json:     req,
		out:      &room,
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteRoom removes a room. Admin only.
func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	return c.do(ctx, call{
		resource: "rooms",
		method:   http.MethodDelete,
		path:     "/rooms/" + roomID,
	})
}

// Ping performs a cheap unauthenticated backend probe for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, call{
		resource:  "rooms",
		method:    http.MethodGet,
		path:      "/rooms",
		anonymous: true,
	})
}
