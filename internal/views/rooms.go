package views

import (
	"context"
	"log/slog"
	"sync"

	"roomdesk/internal/backend"
	"roomdesk/pkg/apperrors"
)

// RoomsAdmin manages the administrator's room listing with create and
// delete. The backend enforces the admin role; this controller only does
// field validation and list bookkeeping.
type RoomsAdmin struct {
	client *backend.Client
	logger *slog.Logger

	mu    sync.Mutex
	rooms []backend.Room
}

func NewRoomsAdmin(client *backend.Client, logger *slog.Logger) *RoomsAdmin {
	return &RoomsAdmin{client: client, logger: logger}
}

// Refresh reloads the room list, keeping the previous one on failure.
func (v *RoomsAdmin) Refresh(ctx context.Context) error {
	rooms, err := v.client.ListRooms(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.rooms = rooms
	v.mu.Unlock()
	return nil
}

// Rooms returns the last successfully fetched list.
func (v *RoomsAdmin) Rooms() []backend.Room {
	v.mu.Lock()
	defer v.mu.Unlock()
	rooms := make([]backend.Room, len(v.rooms))
	copy(rooms, v.rooms)
	return rooms
}

// Create validates and submits a new room, then re-fetches the list.
func (v *RoomsAdmin) Create(ctx context.Context, req backend.CreateRoomRequest) ([]Feedback, error) {
	if req.RoomNumber == "" || req.RoomType == "" {
		err := apperrors.New(apperrors.CodeValidation, "room number and room type are required")
		return []Feedback{failure(err)}, err
	}
	if req.Capacity <= 0 {
		err := apperrors.New(apperrors.CodeValidation, "capacity must be a positive number")
		return []Feedback{failure(err)}, err
	}
	if req.Price < 0 {
		err := apperrors.New(apperrors.CodeValidation, "price cannot be negative")
		return []Feedback{failure(err)}, err
	}
	if req.Status == "" {
		req.Status = backend.RoomAvailable
	}

	feedback := []Feedback{info(MsgCreatingRoom)}
	if _, err := v.client.CreateRoom(ctx, req); err != nil {
		return append(feedback, failure(err)), err
	}

	if err := v.Refresh(ctx); err != nil {
		v.logger.Warn("room list refresh after create failed", "error", err)
	}
	return append(feedback, success(MsgRoomCreated)), nil
}

// Delete removes a room after an explicit confirmation. A failed list
// re-fetch afterwards degrades gracefully: the deletion is still reported
// as successful and the stale list stays until the next refresh.
func (v *RoomsAdmin) Delete(ctx context.Context, roomID string, confirmed bool) ([]Feedback, error) {
	if !confirmed {
		err := apperrors.New(apperrors.CodeValidation, "deletion requires confirmation")
		return []Feedback{failure(err)}, err
	}

	feedback := []Feedback{info(MsgDeletingRoom)}
	if err := v.client.DeleteRoom(ctx, roomID); err != nil {
		return append(feedback, failure(err)), err
	}

	if err := v.Refresh(ctx); err != nil {
		v.logger.Warn("room list refresh after delete failed", "error", err)
	}
	return append(feedback, success(MsgRoomDeleted)), nil
}
