package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	h := NewHandler(newTestService(t))
	e := echo.New()
	return h, e
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestHandler_ListAppointments(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-01-08&view=week", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []AppointmentView `json:"data"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Errorf("expected 2 appointments, got total=%d len=%d", resp.Total, len(resp.Data))
	}
}

func TestHandler_ListAppointments_Search(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-01-08&view=month&q=karki", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"id":"appt-2"`) || strings.Contains(rec.Body.String(), `"id":"appt-1"`) {
		t.Errorf("expected only appt-2, got %s", rec.Body.String())
	}
}

func TestHandler_ListAppointments_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad date", "/?date=08-01-2025"},
		{"bad view", "/?view=year"},
		{"bad status", "/?status=pending"},
		{"bad order", "/?order=sideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e := newTestHandler(t)
			req := httptest.NewRequest(http.MethodGet, tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.ListAppointments(c)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := httpCode(t, err); code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", code)
			}
		})
	}
}

func TestHandler_GetAppointment(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := h.GetAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"doctor_name":"Sarah Whitfield"`) {
		t.Errorf("expected resolved doctor name, got %s", rec.Body.String())
	}
}

func TestHandler_GetAppointment_NotFound(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetAppointment(c)
	if err == nil {
		t.Fatal("expected error for not found")
	}
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		body     string
		wantCode int
	}{
		{"legal transition", "appt-1", `{"status":"confirmed"}`, http.StatusOK},
		{"case insensitive", "appt-1", `{"status":" Cancelled "}`, http.StatusOK},
		{"unknown status", "appt-1", `{"status":"pending"}`, http.StatusBadRequest},
		{"all sentinel", "appt-1", `{"status":"all"}`, http.StatusBadRequest},
		{"terminal appointment", "appt-2", `{"status":"scheduled"}`, http.StatusConflict},
		{"unknown appointment", "missing", `{"status":"confirmed"}`, http.StatusNotFound},
		{"malformed body", "appt-1", `{"status":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e := newTestHandler(t)
			req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := h.UpdateStatus(c)
			if tt.wantCode == http.StatusOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rec.Code != http.StatusOK {
					t.Errorf("expected 200, got %d", rec.Code)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if code := httpCode(t, err); code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, code)
			}
		})
	}
}

func TestHandler_GetStats(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetStats(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var st Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Total != 3 {
		t.Errorf("expected total 3, got %d", st.Total)
	}
}

func TestHandler_GetCalendar(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-01-08&view=week", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetCalendar(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Cursor struct {
			Date string `json:"date"`
			View string `json:"view"`
		} `json:"cursor"`
		Calendar struct {
			Columns []struct {
				Key string `json:"key"`
			} `json:"columns"`
		} `json:"calendar"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Cursor.Date != "2025-01-08" || resp.Cursor.View != "week" {
		t.Errorf("unexpected cursor %+v", resp.Cursor)
	}
	if len(resp.Calendar.Columns) != 7 || resp.Calendar.Columns[0].Key != "2025-01-06" {
		t.Errorf("unexpected columns %+v", resp.Calendar.Columns)
	}
}

func TestHandler_Navigate(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantDate string
		wantErr  bool
	}{
		{"next week", "/?date=2025-01-08&view=week&direction=next", "2025-01-15", false},
		{"previous day", "/?date=2025-01-08&view=day&direction=prev", "2025-01-07", false},
		{"next month rollover", "/?date=2025-01-31&view=month&direction=next", "2025-03-03", false},
		{"today", "/?date=2024-06-01&view=day&direction=today", "2025-01-08", false},
		{"bad direction", "/?direction=sideways", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e := newTestHandler(t)
			req := httptest.NewRequest(http.MethodGet, tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Navigate(c)
			if tt.wantErr {
				if err == nil || httpCode(t, err) != http.StatusBadRequest {
					t.Errorf("expected 400, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got["date"] != tt.wantDate {
				t.Errorf("expected %s, got %v", tt.wantDate, got["date"])
			}
		})
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e := newTestHandler(t)
	h.RegisterRoutes(e.Group("/api/v1"))

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, route := range []string{
		"GET /api/v1/appointments",
		"GET /api/v1/appointments/stats",
		"GET /api/v1/appointments/:id",
		"PATCH /api/v1/appointments/:id/status",
		"GET /api/v1/calendar",
		"GET /api/v1/calendar/navigate",
	} {
		if !registered[route] {
			t.Errorf("route %s not registered", route)
		}
	}
}
