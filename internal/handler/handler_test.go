package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julnac/salon-manager/backend/internal/availability"
	"github.com/julnac/salon-manager/backend/internal/config"
	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallClock(hour, min int) time.Time {
	return time.Date(2030, 6, 3, hour, min, 0, 0, time.UTC)
}

func testSnapshot() *availability.Snapshot {
	return &availability.Snapshot{
		Services: []*domain.ServiceOffer{
			{ID: 1, Name: "Haircut", DurationMinutes: 30},
			{ID: 2, Name: "Beard trim", DurationMinutes: 20},
			{ID: 4, Name: "Manicure", DurationMinutes: 45},
		},
		Staff: []*domain.Staff{
			{ID: 1, FirstName: "Anna", LastName: "Nowak", Email: "anna@salon.local"},
			{ID: 2, FirstName: "Marek", LastName: "Kowalski", Email: "marek@salon.local"},
		},
		Qualifications: []domain.Qualification{
			{StaffID: 1, ServiceID: 1},
			{StaffID: 1, ServiceID: 2},
			{StaffID: 2, ServiceID: 1},
			{StaffID: 2, ServiceID: 2},
		},
		Schedules: []*domain.WorkSchedule{
			{StaffID: 1, DayOfWeek: 1, StartTime: "09:00:00", EndTime: "17:00:00", IsWorkingDay: true},
			{StaffID: 2, DayOfWeek: 1, StartTime: "12:00:00", EndTime: "15:00:00", IsWorkingDay: true},
		},
		Bookings: []*domain.Booking{
			{ID: 1, StaffID: 1, StartTime: wallClock(10, 0), EndTime: wallClock(11, 0), Status: domain.BookingStatusApproved},
		},
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{Environment: "development"}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 1
	cfg.Salon.Name = "Salon Manager"
	cfg.Salon.Address = "ul. Marszalkowska 1, Warszawa"
	cfg.Salon.OpeningTime = "09:00:00"
	cfg.Salon.ClosingTime = "18:00:00"
	cfg.Salon.SlotDurationMinutes = 30
	return cfg
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	finder, err := availability.NewFinder(testSnapshot(), availability.Options{
		SlotGranularityMinutes: 30,
		Concurrency:            2,
		Now:                    func() time.Time { return wallClock(8, 0) },
	})
	require.NoError(t, err)

	h, err := NewHandler(testConfig(), nil, finder, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h *Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestGetAvailability(t *testing.T) {
	h := newTestHandler(t)

	for _, query := range []string{"serviceIds=1,2", "serviceIds=1&serviceIds=2", "serviceIds=2,1,2"} {
		t.Run(query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reservations/availability?date=2030-06-03&"+query, nil)
			rec, env := do(t, h, req)

			require.Equal(t, http.StatusOK, rec.Code, env.Message)
			assert.True(t, env.Success)

			var resp availabilityResponse
			require.NoError(t, json.Unmarshal(env.Data, &resp))

			assert.Equal(t, "2030-06-03", resp.Date)
			assert.Equal(t, 50, resp.TotalDurationMinutes)
			require.Len(t, resp.Staff, 2)

			assert.Equal(t, int64(1), resp.Staff[0].StaffID)
			assert.Equal(t, "Anna", resp.Staff[0].FirstName)
			assert.Equal(t, []string{
				"09:00", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
			}, resp.Staff[0].AvailableSlots)

			assert.Equal(t, int64(2), resp.Staff[1].StaffID)
			assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:00"}, resp.Staff[1].AvailableSlots)
		})
	}
}

func TestGetAvailabilityNoQualifiedStaff(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/reservations/availability?date=2030-06-03&serviceIds=4", nil)
	rec, env := do(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"staff":[]`)
}

func TestGetAvailabilityErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing date", "serviceIds=1", http.StatusBadRequest},
		{"malformed date", "date=03-06-2030&serviceIds=1", http.StatusBadRequest},
		{"past date", "date=2030-06-02&serviceIds=1", http.StatusBadRequest},
		{"missing services", "date=2030-06-03", http.StatusBadRequest},
		{"non numeric id", "date=2030-06-03&serviceIds=abc", http.StatusBadRequest},
		{"zero id", "date=2030-06-03&serviceIds=0", http.StatusBadRequest},
		{"unknown service", "date=2030-06-03&serviceIds=1,99", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reservations/availability?"+tt.query, nil)
			rec, env := do(t, h, req)

			assert.Equal(t, tt.status, rec.Code, env.Message)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestGetSalonInfo(t *testing.T) {
	h := newTestHandler(t)

	rec, env := do(t, h, httptest.NewRequest(http.MethodGet, "/salon", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var info domain.SalonInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "Salon Manager", info.Name)
	assert.Equal(t, 30, info.SlotDurationMinutes)
	assert.Equal(t, "UTC", info.Timezone)
}

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	h := newTestHandler(t)

	body := `{"name":"Haircut","price":80,"durationMinutes":30}`

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "not-a-jwt"})
		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("client role", func(t *testing.T) {
		token, err := h.signToken(7, string(domain.RoleClient), time.Now().Add(time.Hour))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := h.signToken(1, string(domain.RoleAdmin), time.Now().Add(-time.Minute))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminValidationRunsBeforeStorage(t *testing.T) {
	h := newTestHandler(t)

	token, err := h.signToken(1, string(domain.RoleAdmin), time.Now().Add(time.Hour))
	require.NoError(t, err)

	for _, body := range []string{
		`{"name":"","price":80,"durationMinutes":30}`,
		`{"name":"Haircut","price":-1,"durationMinutes":30}`,
		`{"name":"Haircut","price":80,"durationMinutes":0}`,
		`{"name":"Haircut","unknown":true}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
		req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
		rec, env := do(t, h, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.False(t, env.Success)
	}
}

func TestLogout(t *testing.T) {
	h := newTestHandler(t)

	rec, env := do(t, h, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, tokenCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestRecovererTurnsPanicsIntoServerErrors(t *testing.T) {
	h := newTestHandler(t)
	h.Mux.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec, env := do(t, h, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", env.Message)
}

func TestRegisterValidationRunsBeforeStorage(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"no uppercase letter", `{"email":"ola@salon.local","password":"secret!23","firstName":"Ola","lastName":"Nowak"}`, "uppercase letter and one special character"},
		{"no special character", `{"email":"ola@salon.local","password":"Secret123","firstName":"Ola","lastName":"Nowak"}`, "uppercase letter and one special character"},
		{"too short", `{"email":"ola@salon.local","password":"Se!1","firstName":"Ola","lastName":"Nowak"}`, "Password"},
		{"invalid e-mail", `{"email":"ola","password":"Secret!23","firstName":"Ola","lastName":"Nowak"}`, "Email"},
		{"missing name", `{"email":"ola@salon.local","password":"Secret!23","lastName":"Nowak"}`, "FirstName"},
		{"role is not accepted", `{"email":"ola@salon.local","password":"Secret!23","firstName":"Ola","lastName":"Nowak","role":"ADMIN"}`, "unknown field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			rec, env := do(t, h, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tt.message)
		})
	}
}

func TestReviewRoutes(t *testing.T) {
	h := newTestHandler(t)

	t.Run("posting requires a login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(`{"content":"Great haircut"}`))
		rec, _ := do(t, h, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("content is validated", func(t *testing.T) {
		token, err := h.signToken(7, string(domain.RoleClient), time.Now().Add(time.Hour))
		require.NoError(t, err)

		for _, body := range []string{
			`{"content":""}`,
			`{"content":"` + strings.Repeat("a", 2001) + `"}`,
			`{"content":"ok","userId":1}`,
		} {
			req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
			req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
			rec, env := do(t, h, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, env.Message)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, path := range []string{"/reviews/abc", "/reviews/0", "/reviews/-3"} {
			rec, env := do(t, h, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Equal(t, "invalid review id", env.Message)
		}
	})
}

func TestDeleteReviewOnlyByAuthorOrAdmin(t *testing.T) {
	h := newTestHandler(t)
	review := &domain.Review{ID: 3, UserID: 7, Content: "Great haircut"}

	req := httptest.NewRequest(http.MethodDelete, "/reviews/3", nil)
	ctx := context.WithValue(req.Context(), ReviewCtx, review)
	ctx = context.WithValue(ctx, RoleCtxKey, string(domain.RoleClient))
	ctx = context.WithValue(ctx, SubCtxKey, "8")

	rec := httptest.NewRecorder()
	h.DeleteReview(rec, req.WithContext(ctx))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "insufficient permissions", env.Message)
}
