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

// ManagerHandler bundles dependencies for manager endpoints.
type ManagerHandler struct {
	Managers *repository.ManagerRepo
	Periods  *repository.PeriodRepo
}

func NewManagerHandler(m *repository.ManagerRepo, p *repository.PeriodRepo) *ManagerHandler {
	return &ManagerHandler{Managers: m, Periods: p}
}

func (h *ManagerHandler) Create(c echo.Context) error {
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

	m := &model.Manager{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Managers.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create manager failed"})
	}
	return c.JSON(http.StatusCreated, personResp{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Status: m.Status.String()})
}

func (h *ManagerHandler) List(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ms, err := h.Managers.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list managers failed"})
	}
	out := make([]personResp, 0, len(ms))
	for _, m := range ms {
		out = append(out, personResp{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Status: m.Status.String()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ManagerHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Managers.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	return c.JSON(http.StatusOK, personResp{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Status: m.Status.String()})
}

// History returns the manager's period ledger.
func (h *ManagerHandler) History(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Managers.GetByID(ctx, id); err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	periods, err := h.Periods.History(ctx, model.ManagerRef(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}
	return c.JSON(http.StatusOK, toPeriodResps(periods))
}

func (h *ManagerHandler) Update(c echo.Context) error {
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

	m := &model.Manager{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Managers.Update(ctx, m); err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	updated, err := h.Managers.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	return c.JSON(http.StatusOK, personResp{ID: updated.ID, FirstName: updated.FirstName, LastName: updated.LastName, Status: updated.Status.String()})
}

func (h *ManagerHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Managers.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ManagerHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Managers.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	m, err := h.Managers.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrManagerNotFound)
	}
	return c.JSON(http.StatusOK, personResp{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Status: m.Status.String()})
}
