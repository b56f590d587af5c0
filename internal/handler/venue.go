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

// VenueHandler bundles dependencies for venue endpoints.
type VenueHandler struct {
	Venues *repository.VenueRepo
}

func NewVenueHandler(v *repository.VenueRepo) *VenueHandler {
	return &VenueHandler{Venues: v}
}

type venueReq struct {
	Name    string `json:"name"`
	Street  string `json:"street_address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

type venueResp struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street_address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

func toVenueResp(v *model.Venue) venueResp {
	return venueResp{ID: v.ID, Name: v.Name, Street: v.Street, City: v.City, State: v.State, Zipcode: v.Zipcode}
}

func (h *VenueHandler) Create(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Venue{Name: req.Name, Street: req.Street, City: req.City, State: req.State, Zipcode: req.Zipcode}
	if err := h.Venues.Create(ctx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, toVenueResp(v))
}

func (h *VenueHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vs, err := h.Venues.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
	}
	out := make([]venueResp, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VenueHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrVenueNotFound)
	}
	return c.JSON(http.StatusOK, toVenueResp(v))
}

func (h *VenueHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v := &model.Venue{ID: id, Name: req.Name, Street: req.Street, City: req.City, State: req.State, Zipcode: req.Zipcode}
	if err := h.Venues.Update(ctx, v); err != nil {
		return repoError(c, err, repository.ErrVenueNotFound)
	}
	updated, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrVenueNotFound)
	}
	return c.JSON(http.StatusOK, toVenueResp(updated))
}

// Delete soft-deletes the venue unless a live event still references it.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Venues.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrVenueNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VenueHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Venues.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrVenueNotFound)
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrVenueNotFound)
	}
	return c.JSON(http.StatusOK, toVenueResp(v))
}
