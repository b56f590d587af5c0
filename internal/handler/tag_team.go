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

// TagTeamHandler bundles dependencies for tag team endpoints.  Partner
// attach/detach runs through the lifecycle service so membership rows and
// the team's ledger stay consistent.
type TagTeamHandler struct {
	TagTeams  *repository.TagTeamRepo
	Periods   *repository.PeriodRepo
	Lifecycle *lifecycle.Service
}

func NewTagTeamHandler(t *repository.TagTeamRepo, p *repository.PeriodRepo, svc *lifecycle.Service) *TagTeamHandler {
	return &TagTeamHandler{TagTeams: t, Periods: p, Lifecycle: svc}
}

type tagTeamReq struct {
	Name      string  `json:"name"`
	Signature *string `json:"signature_move"`
}

type tagTeamPartnerResp struct {
	WrestlerID   uint64 `json:"wrestler_id"`
	WrestlerName string `json:"wrestler_name"`
	Status       string `json:"status"`
	JoinedAt     string `json:"joined_at"`
}

type tagTeamResp struct {
	ID        uint64               `json:"id"`
	Name      string               `json:"name"`
	Signature *string              `json:"signature_move,omitempty"`
	Status    string               `json:"status"`
	Bookable  bool                 `json:"bookable"`
	Partners  []tagTeamPartnerResp `json:"partners"`
}

// detail assembles a team response with partners and derived bookability.
func (h *TagTeamHandler) detail(ctx context.Context, t *model.TagTeam) (tagTeamResp, error) {
	partners, err := h.TagTeams.CurrentPartners(ctx, t.ID)
	if err != nil {
		return tagTeamResp{}, err
	}
	employed := 0
	prs := make([]tagTeamPartnerResp, 0, len(partners))
	for _, p := range partners {
		if p.WrestlerStatus == model.StatusEmployed {
			employed++
		}
		prs = append(prs, tagTeamPartnerResp{
			WrestlerID:   p.Membership.WrestlerID,
			WrestlerName: p.WrestlerName,
			Status:       p.WrestlerStatus.String(),
			JoinedAt:     p.Membership.JoinedAt.Format(time.RFC3339),
		})
	}
	return tagTeamResp{
		ID:        t.ID,
		Name:      t.Name,
		Signature: t.Signature,
		Status:    t.Status.String(),
		Bookable:  model.Bookable(t.Status, employed),
		Partners:  prs,
	}, nil
}

func (h *TagTeamHandler) Create(c echo.Context) error {
	var req tagTeamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.TagTeam{Name: req.Name, Signature: req.Signature}
	if err := h.TagTeams.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tag team failed"})
	}
	resp, err := h.detail(ctx, t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tag team failed"})
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *TagTeamHandler) List(c echo.Context) error {
	status, err := statusFilter(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	teams, err := h.TagTeams.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tag teams failed"})
	}
	out := make([]tagTeamResp, 0, len(teams))
	for _, t := range teams {
		resp, err := h.detail(ctx, t)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load partners failed"})
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TagTeamHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.TagTeams.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	resp, err := h.detail(ctx, t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load partners failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// History returns the team's period ledger.
func (h *TagTeamHandler) History(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.TagTeams.GetByID(ctx, id); err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	periods, err := h.Periods.History(ctx, model.TagTeamRef(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}
	return c.JSON(http.StatusOK, toPeriodResps(periods))
}

func (h *TagTeamHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req tagTeamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.TagTeam{ID: id, Name: req.Name, Signature: req.Signature}
	if err := h.TagTeams.Update(ctx, t); err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	updated, err := h.TagTeams.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	resp, err := h.detail(ctx, updated)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load partners failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TagTeamHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.TagTeams.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TagTeamHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.TagTeams.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	t, err := h.TagTeams.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrTagTeamNotFound)
	}
	resp, err := h.detail(ctx, t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load partners failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

type partnerReq struct {
	WrestlerID    uint64 `json:"wrestler_id"`
	EffectiveDate string `json:"effective_date"`
}

// AddPartner attaches a wrestler to the team.  A wrestler may belong to
// several teams at once but only once per team.
func (h *TagTeamHandler) AddPartner(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req partnerReq
	if err := c.Bind(&req); err != nil || req.WrestlerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wrestler_id required"})
	}
	effective, err := parseDateString(req.EffectiveDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	membership, err := h.Lifecycle.AddTagTeamPartner(ctx, id, req.WrestlerID, effective)
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"tag_team_id": membership.TagTeamID,
		"wrestler_id": membership.WrestlerID,
		"joined_at":   membership.JoinedAt.Format(time.RFC3339),
	})
}

// RemovePartner closes the wrestler's open membership in the team.
func (h *TagTeamHandler) RemovePartner(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	wrestlerID, err := parseID(c, "wrestler_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	effective, err := parseEffectiveDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lifecycle.RemoveTagTeamPartner(ctx, id, wrestlerID, effective); err != nil {
		return lifecycleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
