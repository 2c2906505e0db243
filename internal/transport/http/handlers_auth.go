package httptransport

import (
	"context"
	"net/http"

	"roomdesk/internal/backend"
	"roomdesk/internal/session"
	"roomdesk/internal/views"
	"roomdesk/pkg/apperrors"
	"roomdesk/pkg/platform/httputil"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User   backend.User `json:"user"`
	Device string       `json:"device"`
}

type contextKey struct{ name string }

var sessionKey = contextKey{"frontend-session"}

// requireSession resolves the session cookie to a frontend session. A
// missing or stale cookie yields 401, which browser code treats as a
// redirect to the login view.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cfg.SessionCookieName)
		if err != nil {
			httputil.WriteError(w, apperrors.New(apperrors.CodeAuth, "not logged in"))
			return
		}
		fs, err := h.store.FindByID(r.Context(), cookie.Value)
		if err != nil {
			httputil.WriteError(w, apperrors.New(apperrors.CodeAuth, "session expired - please log in again"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, fs)))
	})
}

func frontendSession(r *http.Request) *session.Frontend {
	fs, _ := r.Context().Value(sessionKey).(*session.Frontend)
	return fs
}

// establishSession runs the shared tail of login and register: fetch the
// account, create the frontend session and its view controllers, register
// the forced-logout hook, and set the cookie.
func (h *Handler) establishSession(w http.ResponseWriter, r *http.Request, client *backend.Client, sessCtx *session.Context) {
	user, err := client.Me(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	device := session.DeviceSummary(r.UserAgent())
	fs := &session.Frontend{
		Ctx:      sessCtx,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		Device:   device,
	}
	if err := h.store.Create(r.Context(), fs); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.mu.Lock()
	h.views[fs.ID] = views.NewSession(client, user.Role, h.logger, h.metrics, h.cfg.AggregationTimeout)
	h.mu.Unlock()

	// Any 401 from the backend invalidates the session context; tearing the
	// frontend session down with it forces the next request to 401 here too,
	// regardless of which operation triggered it.
	id := fs.ID
	sessCtx.OnExpired(func() {
		h.logger.Info("backend rejected session, forcing logout", "session_id", id)
		h.dropSession(id)
	})

	if h.metrics != nil {
		h.metrics.SetActiveSessions(h.store.Count())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    fs.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("session established",
		"session_id", fs.ID,
		"role", user.Role,
		"device", device,
	)
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{User: *user, Device: device})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[loginRequest](w, r, h.logger)
	if !ok {
		return
	}

	sessCtx := session.NewContext()
	client := h.newClient(sessCtx)
	if err := client.Login(r.Context(), req.Email, req.Password); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.establishSession(w, r, client, sessCtx)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[backend.RegisterRequest](w, r, h.logger)
	if !ok {
		return
	}

	sessCtx := session.NewContext()
	client := h.newClient(sessCtx)
	if err := client.Register(r.Context(), *req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.establishSession(w, r, client, sessCtx)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	fs := frontendSession(r)
	fs.Ctx.Clear()
	h.dropSession(fs.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	fs := frontendSession(r)
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{
		User: backend.User{
			Email:    fs.Email,
			Username: fs.Username,
			Role:     fs.Role,
		},
		Device: fs.Device,
	})
}
