package httptransport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomdesk/internal/backend"
	"roomdesk/internal/platform/config"
	"roomdesk/internal/platform/health"
	"roomdesk/internal/session"
	httptransport "roomdesk/internal/transport/http"
)

// fakeBackend scripts the booking backend for end-to-end handler tests.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	server *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{routes: make(map[string]http.HandlerFunc)}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		handler, ok := fb.routes[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"no such route"}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) on(route string, handler http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = handler
}

func (fb *fakeBackend) onJSON(route string, status int, body any) {
	fb.on(route, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	})
}

// allowAuth scripts a successful login and account lookup.
func (fb *fakeBackend) allowAuth(role string) {
	fb.onJSON("POST /auth/login", http.StatusOK, backend.Token{AccessToken: "token-abc"})
	fb.onJSON("GET /auth/me", http.StatusOK, backend.User{
		Email: "user@example.com", Username: "user", Role: role,
	})
}

func newTestRouter(t *testing.T, fb *fakeBackend) http.Handler {
	t.Helper()
	cfg := config.Server{
		SessionCookieName:  "roomdesk_session",
		AggregationTimeout: time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewInMemoryStore()
	factory := func(sess *session.Context) *backend.Client {
		return backend.New(fb.server.URL, sess, 2*time.Second)
	}
	h := httptransport.NewHandler(cfg, logger, nil, store, factory)
	return httptransport.NewRouter(h, health.New("test"), logger)
}

func login(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "roomdesk_session" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func doJSON(router http.Handler, method, path string, cookie *http.Cookie, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEstablishesSession(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleUser)
	router := newTestRouter(t, fb)

	cookie := login(t, router)

	rec := doJSON(router, http.MethodGet, "/auth/me", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User   backend.User `json:"user"`
		Device string       `json:"device"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.Equal(t, backend.RoleUser, resp.User.Role)
}

func TestRejectedLoginSurfacesDetail(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})
	router := newTestRouter(t, fb)

	rec := doJSON(router, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": "user@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect email or password")
}

func TestRequestsWithoutSessionAreRejected(t *testing.T) {
	fb := newFakeBackend(t)
	router := newTestRouter(t, fb)

	rec := doJSON(router, http.MethodGet, "/bookings/my", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMutatingRequestsRequireJSONContentType(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleUser)
	router := newTestRouter(t, fb)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewReader([]byte("email=user%40example.com&password=secret")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_content_type")

	// JSON posts pass through the check.
	rec = doJSON(router, http.MethodPost, "/auth/login",
		nil, map[string]string{"email": "user@example.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBackend401ForcesLogoutEverywhere(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleUser)
	router := newTestRouter(t, fb)
	cookie := login(t, router)

	// The backend starts rejecting the token mid-session.
	fb.on("GET /bookings/my", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	rec := doJSON(router, http.MethodGet, "/bookings/my", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The frontend session is gone too; an unrelated endpoint now 401s
	// without reaching the backend.
	rec = doJSON(router, http.MethodGet, "/auth/me", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesCookie(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleUser)
	router := newTestRouter(t, fb)
	cookie := login(t, router)

	rec := doJSON(router, http.MethodPost, "/auth/logout", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/auth/me", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardAggregatesForAdmin(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleAdmin)
	fb.onJSON("GET /rooms", http.StatusOK, []backend.Room{
		{ID: "r1", Status: backend.RoomAvailable},
		{ID: "r2", Status: backend.RoomOccupied},
	})
	fb.onJSON("GET /notifications", http.StatusOK, []backend.Notification{
		{ID: "n1", BookingID: "b1", Status: backend.StatusPending},
		{ID: "n2", Status: backend.StatusPending}, // not booking-linked
	})
	fb.onJSON("GET /tenants", http.StatusOK, []backend.Tenant{{ID: "t1"}})

	router := newTestRouter(t, fb)
	cookie := login(t, router)

	rec := doJSON(router, http.MethodGet, "/dashboard", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		State string `json:"state"`
		Tiles []struct {
			Label string `json:"label"`
			Value int    `json:"value"`
		} `json:"tiles"`
		Stats map[string]int `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.State)
	assert.Equal(t, 2, resp.Stats["totalRooms"])
	assert.Equal(t, 1, resp.Stats["totalBookings"], "only booking-linked notifications count")
	assert.Equal(t, 2, resp.Stats["totalNotifications"])
	assert.Equal(t, 1, resp.Stats["totalTenants"])
	assert.NotEmpty(t, resp.Tiles)
}

func TestBookingSubmissionFlow(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleUser)
	fb.onJSON("GET /rooms", http.StatusOK, []backend.Room{
		{ID: "r1", Status: backend.RoomAvailable},
	})
	fb.onJSON("POST /bookings", http.StatusOK, map[string]string{"id": "b1"})

	router := newTestRouter(t, fb)
	cookie := login(t, router)

	rec := doJSON(router, http.MethodGet, "/booking-form", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/booking-form/room", cookie,
		map[string]string{"room_id": "r1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/booking-form/dates", cookie,
		map[string]string{"start_date": "2026-03-01", "end_date": "2026-04-01"})
	require.Equal(t, http.StatusOK, rec.Code)
	var state struct {
		Duration int `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 2, state.Duration)

	rec = doJSON(router, http.MethodPost, "/bookings", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Booking created successfully!")
}

func TestInvertedDatesRenderInlineValidation(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleUser)
	router := newTestRouter(t, fb)
	cookie := login(t, router)

	rec := doJSON(router, http.MethodPost, "/booking-form/dates", cookie,
		map[string]string{"start_date": "2026-04-01", "end_date": "2026-03-01"})
	require.Equal(t, http.StatusOK, rec.Code, "ordering violations render inline, not as errors")
	assert.Contains(t, rec.Body.String(), "end date must be after start date")
}

func TestDeleteRoomRequiresConfirmation(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleAdmin)
	router := newTestRouter(t, fb)
	cookie := login(t, router)

	rec := doJSON(router, http.MethodDelete, "/rooms/r1?confirmed=false", cookie, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationDecisionFlow(t *testing.T) {
	fb := newFakeBackend(t)
	fb.allowAuth(backend.RoleAdmin)
	fb.onJSON("GET /notifications", http.StatusOK, []backend.Notification{})
	fb.on("PUT /notifications/n1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	router := newTestRouter(t, fb)
	cookie := login(t, router)

	rec := doJSON(router, http.MethodPut, "/notifications/n1", cookie,
		map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Booking approved successfully!")
}

func TestHealthEndpointsAreUnauthenticated(t *testing.T) {
	fb := newFakeBackend(t)
	router := newTestRouter(t, fb)

	rec := doJSON(router, http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
