package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
	"github.com/iliyamo/wrestling-roster/internal/model"
	"github.com/iliyamo/wrestling-roster/internal/repository"
)

// TitleHandler bundles dependencies for title endpoints.  Activation,
// retirement, crowning and vacating all run through the lifecycle service.
type TitleHandler struct {
	Titles    *repository.TitleRepo
	Periods   *repository.PeriodRepo
	Lifecycle *lifecycle.Service
	Clock     lifecycle.Clock
}

func NewTitleHandler(t *repository.TitleRepo, p *repository.PeriodRepo, svc *lifecycle.Service, clock lifecycle.Clock) *TitleHandler {
	return &TitleHandler{Titles: t, Periods: p, Lifecycle: svc, Clock: clock}
}

type titleReq struct {
	Name string `json:"name"`
}

type championResp struct {
	ChampionType string `json:"champion_type"`
	ChampionID   uint64 `json:"champion_id"`
	WonAt        string `json:"won_at"`
	LostAt       string `json:"lost_at,omitempty"`
	ReignDays    int    `json:"reign_days"`
}

type titleResp struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Champion *championResp `json:"champion,omitempty"`
}

func (h *TitleHandler) toChampionResp(c model.TitleChampionship) championResp {
	out := championResp{
		ChampionType: string(c.ChampionType),
		ChampionID:   c.ChampionID,
		WonAt:        c.WonAt.Format(time.RFC3339),
		ReignDays:    c.ReignDays(h.Clock.Now()),
	}
	if c.LostAt != nil {
		out.LostAt = c.LostAt.Format(time.RFC3339)
	}
	return out
}

func (h *TitleHandler) detail(ctx context.Context, t *model.Title) (titleResp, error) {
	resp := titleResp{ID: t.ID, Name: t.Name, Status: t.Status.String()}
	current, err := h.Titles.CurrentChampionship(ctx, t.ID)
	if err != nil {
		return titleResp{}, err
	}
	if current != nil {
		cr := h.toChampionResp(*current)
		resp.Champion = &cr
	}
	return resp, nil
}

func (h *TitleHandler) Create(c echo.Context) error {
	var req titleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Title{Name: req.Name}
	if err := h.Titles.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create title failed"})
	}
	return c.JSON(http.StatusCreated, titleResp{ID: t.ID, Name: t.Name, Status: t.Status.String()})
}

func (h *TitleHandler) List(c echo.Context) error {
	var status *model.TitleStatus
	if raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); raw != "" {
		s := model.TitleStatus(raw)
		if !s.IsValid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		status = &s
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	titles, err := h.Titles.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list titles failed"})
	}
	out := make([]titleResp, 0, len(titles))
	for _, t := range titles {
		resp, err := h.detail(ctx, t)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load champion failed"})
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TitleHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Titles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	resp, err := h.detail(ctx, t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load champion failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Reigns returns the title's full championship history, newest first.
func (h *TitleHandler) Reigns(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Titles.GetByID(ctx, id); err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	reigns, err := h.Titles.ChampionshipHistory(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reigns failed"})
	}
	out := make([]championResp, 0, len(reigns))
	for _, r := range reigns {
		out = append(out, h.toChampionResp(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TitleHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req titleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.Title{ID: id, Name: req.Name}
	if err := h.Titles.Update(ctx, t); err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	updated, err := h.Titles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	resp, err := h.detail(ctx, updated)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load champion failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes the title.  A title with a current champion cannot
// be deleted; 409 is returned until it is vacated or retired.
func (h *TitleHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Titles.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TitleHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Titles.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	t, err := h.Titles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrTitleNotFound)
	}
	resp, err := h.detail(ctx, t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load champion failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Transition returns the handler for one title transition (activate,
// deactivate, retire, unretire).
func (h *TitleHandler) Transition(tr lifecycle.Transition) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		effective, err := parseEffectiveDate(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		status, err := h.Lifecycle.ApplyTitle(ctx, id, tr, effective)
		if err != nil {
			return lifecycleError(c, err)
		}

		publishTransition(model.TitleRef(id), string(tr), status.String(), effective, currentUserID(c))

		return c.JSON(http.StatusOK, transitionResp{
			EntityType: string(model.EntityTitle),
			EntityID:   id,
			Transition: string(tr),
			Status:     status.String(),
		})
	}
}

type crownReq struct {
	ChampionType  string `json:"champion_type"` // WRESTLER | TAG_TEAM
	ChampionID    uint64 `json:"champion_id"`
	EffectiveDate string `json:"effective_date"`
}

// Crown makes the given wrestler or tag team the title's champion.  The
// previous reign, if any, ends at the same instant the new one begins.
func (h *TitleHandler) Crown(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req crownReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t := model.EntityType(strings.ToUpper(strings.TrimSpace(req.ChampionType)))
	champion := model.EntityRef{Type: t, ID: req.ChampionID}
	if req.ChampionID == 0 || !t.IsValid() || !champion.CanHoldTitle() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "champion must be a wrestler or tag team"})
	}
	effective, err := parseDateString(req.EffectiveDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reign, err := h.Lifecycle.CrownChampion(ctx, id, champion, effective)
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusCreated, h.toChampionResp(*reign))
}

// Vacate ends the current reign without crowning a successor.
func (h *TitleHandler) Vacate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	effective, err := parseEffectiveDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lifecycle.VacateTitle(ctx, id, effective); err != nil {
		return lifecycleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
