package httptransport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomdesk/internal/backend"
	"roomdesk/internal/views"
	"roomdesk/pkg/apperrors"
	"roomdesk/pkg/platform/httputil"
)

// controllers resolves the view-controller set for the request's session.
// The set exists for every session created through login/register; a miss
// means the session was torn down by a forced logout mid-request.
func (h *Handler) controllers(w http.ResponseWriter, r *http.Request) (*views.Session, bool) {
	fs := frontendSession(r)
	vs, ok := h.viewSession(fs.ID)
	if !ok {
		httputil.WriteError(w, apperrors.New(apperrors.CodeAuth, "session expired - please log in again"))
		return nil, false
	}
	return vs, true
}

// feedbackResponse carries the ordered user-facing messages of a mutating
// action next to the refreshed view payload.
type feedbackResponse struct {
	Feedback []views.Feedback `json:"feedback"`
	Data     any              `json:"data,omitempty"`
}

func writeFeedback(w http.ResponseWriter, feedback []views.Feedback, err error, data any) {
	if err != nil {
		var appErr *apperrors.Error
		status := http.StatusInternalServerError
		if errors.As(err, &appErr) {
			status = httputil.CodeToHTTPStatus(appErr.Code)
		}
		httputil.WriteJSON(w, status, feedbackResponse{Feedback: feedback})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, feedbackResponse{Feedback: feedback, Data: data})
}

// ---- dashboard ----

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.Dashboard.Refresh(r.Context()))
}

func (h *Handler) handleDashboardSnapshot(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.Dashboard.Snapshot())
}

// ---- booking form ----

func (h *Handler) handleBookingForm(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	if err := vs.BookingForm.Load(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.BookingForm.State())
}

type datesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *Handler) handleBookingFormDates(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[datesRequest](w, r, h.logger)
	if !ok {
		return
	}
	// An ordering violation is rendered inline on the form state, not as an
	// error response: the form stays usable.
	_ = vs.BookingForm.SetDates(req.StartDate, req.EndDate)
	httputil.WriteJSON(w, http.StatusOK, vs.BookingForm.State())
}

type roomSelectRequest struct {
	RoomID string `json:"room_id"`
}

func (h *Handler) handleBookingFormRoom(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[roomSelectRequest](w, r, h.logger)
	if !ok {
		return
	}
	vs.BookingForm.SelectRoom(req.RoomID)
	httputil.WriteJSON(w, http.StatusOK, vs.BookingForm.State())
}

type durationRequest struct {
	Duration int `json:"duration"`
}

func (h *Handler) handleBookingFormDuration(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[durationRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := vs.BookingForm.SetDuration(req.Duration); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.BookingForm.State())
}

func (h *Handler) handleBookingSubmit(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	feedback, err := vs.BookingForm.Submit(r.Context())
	writeFeedback(w, feedback, err, vs.BookingForm.State())
}

// ---- my bookings ----

func (h *Handler) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	if err := vs.MyBookings.Refresh(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.MyBookings.Bookings())
}

type confirmRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (h *Handler) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[confirmRequest](w, r, h.logger)
	if !ok {
		return
	}
	feedback, err := vs.MyBookings.Cancel(r.Context(), chi.URLParam(r, "id"), req.Confirmed)
	writeFeedback(w, feedback, err, vs.MyBookings.Bookings())
}

// ---- rooms ----

func (h *Handler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	if err := vs.Rooms.Refresh(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.Rooms.Rooms())
}

func (h *Handler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[backend.CreateRoomRequest](w, r, h.logger)
	if !ok {
		return
	}
	feedback, err := vs.Rooms.Create(r.Context(), *req)
	writeFeedback(w, feedback, err, vs.Rooms.Rooms())
}

func (h *Handler) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirmed") == "true"
	feedback, err := vs.Rooms.Delete(r.Context(), chi.URLParam(r, "id"), confirmed)
	writeFeedback(w, feedback, err, vs.Rooms.Rooms())
}

// ---- tenants ----

func (h *Handler) handleListTenants(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	if err := vs.Tenants.Refresh(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.Tenants.Tenants())
}

func (h *Handler) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[backend.CreateTenantRequest](w, r, h.logger)
	if !ok {
		return
	}
	feedback, err := vs.Tenants.Create(r.Context(), *req)
	writeFeedback(w, feedback, err, vs.Tenants.Tenants())
}

// ---- notifications ----

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	if err := vs.Notifications.Refresh(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vs.Notifications.Notifications())
}

type decisionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleDecideNotification(w http.ResponseWriter, r *http.Request) {
	vs, ok := h.controllers(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[decisionRequest](w, r, h.logger)
	if !ok {
		return
	}
	feedback, err := vs.Notifications.Decide(r.Context(), chi.URLParam(r, "id"), req.Status)
	writeFeedback(w, feedback, err, vs.Notifications.Notifications())
}
