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

// RefereeHandler bundles dependencies for referee endpoints.
type RefereeHandler struct {
	Referees *repository.RefereeRepo
	Periods  *repository.PeriodRepo
}

func NewRefereeHandler(r *repository.RefereeRepo, p *repository.PeriodRepo) *RefereeHandler {
	return &RefereeHandler{Referees: r, Periods: p}
}

type personReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type personResp struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
}

func (h *RefereeHandler) Create(c echo.Context) error {
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ref := &model.Referee{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Referees.Create(ctx, ref); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create referee failed"})
	}
	return c.JSON(http.StatusCreated, personResp{ID: ref.ID, FirstName: ref.FirstName, LastName: ref.LastName, Status: ref.Status.String()})
}

func (h *RefereeHandler) List(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	refs, err := h.Referees.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list referees failed"})
	}
	out := make([]personResp, 0, len(refs))
	for _, r := range refs {
		out = append(out, personResp{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Status: r.Status.String()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RefereeHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Referees.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	return c.JSON(http.StatusOK, personResp{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Status: r.Status.String()})
}

// History returns the referee's period ledger.
func (h *RefereeHandler) History(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Referees.GetByID(ctx, id); err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	periods, err := h.Periods.History(ctx, model.RefereeRef(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}
	return c.JSON(http.StatusOK, toPeriodResps(periods))
}

func (h *RefereeHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r := &model.Referee{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Referees.Update(ctx, r); err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	updated, err := h.Referees.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	return c.JSON(http.StatusOK, personResp{ID: updated.ID, FirstName: updated.FirstName, LastName: updated.LastName, Status: updated.Status.String()})
}

func (h *RefereeHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Referees.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RefereeHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Referees.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	r, err := h.Referees.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrRefereeNotFound)
	}
	return c.JSON(http.StatusOK, personResp{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Status: r.Status.String()})
}
