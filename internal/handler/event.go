package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wrestling-roster/internal/model"
	"github.com/iliyamo/wrestling-roster/internal/repository"
)

// EventHandler bundles dependencies for event endpoints.
type EventHandler struct {
	Events *repository.EventRepo
	Venues *repository.VenueRepo
}

func NewEventHandler(e *repository.EventRepo, v *repository.VenueRepo) *EventHandler {
	return &EventHandler{Events: e, Venues: v}
}

type eventReq struct {
	Name    string  `json:"name"`
	Date    string  `json:"date"` // YYYY-MM-DD, empty for unscheduled
	VenueID *uint64 `json:"venue_id"`
	Preview *string `json:"preview"`
}

type eventResp struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Date    *string `json:"date"`
	VenueID *uint64 `json:"venue_id"`
	Preview *string `json:"preview,omitempty"`
}

func toEventResp(e *model.Event) eventResp {
	resp := eventResp{ID: e.ID, Name: e.Name, VenueID: e.VenueID, Preview: e.Preview}
	if e.Date != nil {
		d := e.Date.Format("2006-01-02")
		resp.Date = &d
	}
	return resp
}

// buildEvent validates the request and resolves the optional venue.
func (h *EventHandler) buildEvent(ctx context.Context, id uint64, req eventReq) (*model.Event, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "name required"
	}
	e := &model.Event{ID: id, Name: name, VenueID: req.VenueID, Preview: req.Preview}
	if raw := strings.TrimSpace(req.Date); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, "invalid date"
		}
		d = d.UTC()
		e.Date = &d
	}
	if req.VenueID != nil {
		if _, err := h.Venues.GetByID(ctx, *req.VenueID); err != nil {
			return nil, "unknown venue"
		}
	}
	return e, ""
}

func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, msg := h.buildEvent(ctx, 0, req)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Events.Create(ctx, e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, toEventResp(e))
}

func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	es, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	out := make([]eventResp, 0, len(es))
	for _, e := range es {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrEventNotFound)
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, msg := h.buildEvent(ctx, id, req)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Events.Update(ctx, e); err != nil {
		return repoError(c, err, repository.ErrEventNotFound)
	}
	updated, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrEventNotFound)
	}
	return c.JSON(http.StatusOK, toEventResp(updated))
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrEventNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrEventNotFound)
	}
	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrEventNotFound)
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}
