package scheduling

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Bibek021/dental-one-sub000/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/stats", h.GetStats)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PATCH("/appointments/:id/status", h.UpdateStatus)

	api.GET("/calendar", h.GetCalendar)
	api.GET("/calendar/navigate", h.Navigate)
}

// cursorFromQuery reads ?date=2006-01-02&view=week. A missing date means today.
func (h *Handler) cursorFromQuery(c echo.Context) (Cursor, error) {
	mode, err := ParseViewMode(c.QueryParam("view"))
	if err != nil {
		return Cursor{}, err
	}
	now := h.svc.Now()
	date := now
	if v := c.QueryParam("date"); v != "" {
		date, err = time.ParseInLocation(dayKeyLayout, v, now.Location())
		if err != nil {
			return Cursor{}, errors.New("invalid date, expected YYYY-MM-DD")
		}
	}
	return Cursor{Date: date, Mode: mode}, nil
}

func filterFromQuery(c echo.Context) (FilterState, error) {
	status, err := ParseStatusFilter(c.QueryParam("status"))
	if err != nil {
		return FilterState{}, err
	}
	order, err := ParseSortOrder(c.QueryParam("order"))
	if err != nil {
		return FilterState{}, err
	}
	return FilterState{Status: status, Query: c.QueryParam("q"), Order: order}, nil
}

func (h *Handler) ListAppointments(c echo.Context) error {
	cursor, err := h.cursorFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	state, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items := h.svc.List(c.Request().Context(), cursor, state)
	return c.JSON(http.StatusOK, pagination.Page(items, pagination.FromContext(c)))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	appt, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, appt)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Status = Status(strings.ToLower(strings.TrimSpace(string(req.Status))))
	if !req.Status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	appt, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		if errors.Is(err, ErrInvalidStatusTransition) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats(c.Request().Context()))
}

type calendarResponse struct {
	Cursor   Cursor       `json:"cursor"`
	Calendar CalendarView `json:"calendar"`
}

func (h *Handler) GetCalendar(c echo.Context) error {
	cursor, err := h.cursorFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	state, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view := h.svc.Calendar(c.Request().Context(), cursor, state)
	return c.JSON(http.StatusOK, calendarResponse{Cursor: cursor, Calendar: view})
}

// Navigate handles GET /calendar/navigate?direction=previous|next|today.
func (h *Handler) Navigate(c echo.Context) error {
	cursor, err := h.cursorFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var dir *Direction
	switch d := Direction(strings.ToLower(c.QueryParam("direction"))); d {
	case DirectionPrevious, DirectionNext:
		dir = &d
	case "prev":
		d = DirectionPrevious
		dir = &d
	case "today":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "direction must be previous, next or today")
	}
	return c.JSON(http.StatusOK, h.svc.Navigate(cursor, dir))
}
