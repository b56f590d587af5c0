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

// WrestlerHandler bundles dependencies for wrestler endpoints.
type WrestlerHandler struct {
	Wrestlers *repository.WrestlerRepo
	Periods   *repository.PeriodRepo
}

// NewWrestlerHandler constructs a WrestlerHandler.
func NewWrestlerHandler(w *repository.WrestlerRepo, p *repository.PeriodRepo) *WrestlerHandler {
	return &WrestlerHandler{Wrestlers: w, Periods: p}
}

type wrestlerReq struct {
	Name      string  `json:"name"`
	Height    uint16  `json:"height_inches"`
	Weight    uint16  `json:"weight_lbs"`
	Hometown  string  `json:"hometown"`
	Signature *string `json:"signature_move"`
}

type wrestlerResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Height    uint16  `json:"height_inches"`
	Weight    uint16  `json:"weight_lbs"`
	Hometown  string  `json:"hometown"`
	Signature *string `json:"signature_move,omitempty"`
	Status    string  `json:"status"`
}

func toWrestlerResp(w *model.Wrestler) wrestlerResp {
	return wrestlerResp{
		ID:        w.ID,
		Name:      w.Name,
		Height:    w.Height,
		Weight:    w.Weight,
		Hometown:  w.Hometown,
		Signature: w.Signature,
		Status:    w.Status.String(),
	}
}

type periodResp struct {
	Kind      string  `json:"kind"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
}

func toPeriodResps(periods []model.Period) []periodResp {
	out := make([]periodResp, 0, len(periods))
	for _, p := range periods {
		pr := periodResp{Kind: string(p.Kind), StartedAt: p.StartedAt.Format(time.RFC3339)}
		if p.EndedAt != nil {
			s := p.EndedAt.Format(time.RFC3339)
			pr.EndedAt = &s
		}
		out = append(out, pr)
	}
	return out
}

// statusFilter parses the optional ?status= query parameter.
func statusFilter(c echo.Context) (*model.Status, error) {
	raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if raw == "" {
		return nil, nil
	}
	s := model.Status(raw)
	if !s.IsValid() {
		return nil, &echo.HTTPError{Code: http.StatusBadRequest, Message: "unknown status"}
	}
	return &s, nil
}

// Create adds a wrestler to the roster.  New wrestlers start UNEMPLOYED;
// employ them through a transition.
func (h *WrestlerHandler) Create(c echo.Context) error {
	var req wrestlerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w := &model.Wrestler{
		Name:      req.Name,
		Height:    req.Height,
		Weight:    req.Weight,
		Hometown:  strings.TrimSpace(req.Hometown),
		Signature: req.Signature,
	}
	if err := h.Wrestlers.Create(ctx, w); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create wrestler failed"})
	}
	return c.JSON(http.StatusCreated, toWrestlerResp(w))
}

// List returns live wrestlers, optionally filtered by ?status=.
func (h *WrestlerHandler) List(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ws, err := h.Wrestlers.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list wrestlers failed"})
	}
	out := make([]wrestlerResp, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWrestlerResp(w))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one wrestler.
func (h *WrestlerHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Wrestlers.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	return c.JSON(http.StatusOK, toWrestlerResp(w))
}

// History returns the wrestler's full period ledger, oldest first.
func (h *WrestlerHandler) History(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Wrestlers.GetByID(ctx, id); err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	periods, err := h.Periods.History(ctx, model.WrestlerRef(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}
	return c.JSON(http.StatusOK, toPeriodResps(periods))
}

// Update rewrites the wrestler's profile fields.
func (h *WrestlerHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req wrestlerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w := &model.Wrestler{
		ID:        id,
		Name:      req.Name,
		Height:    req.Height,
		Weight:    req.Weight,
		Hometown:  strings.TrimSpace(req.Hometown),
		Signature: req.Signature,
	}
	if err := h.Wrestlers.Update(ctx, w); err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	updated, err := h.Wrestlers.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	return c.JSON(http.StatusOK, toWrestlerResp(updated))
}

// Delete soft-deletes the wrestler.  History, reigns and memberships are
// kept and the row can be restored.
func (h *WrestlerHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Wrestlers.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// Restore brings a soft-deleted wrestler back.
func (h *WrestlerHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Wrestlers.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	w, err := h.Wrestlers.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrWrestlerNotFound)
	}
	return c.JSON(http.StatusOK, toWrestlerResp(w))
}
