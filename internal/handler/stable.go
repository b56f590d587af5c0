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

// StableHandler bundles dependencies for stable endpoints.  Member
// attach/detach runs through the lifecycle service, which enforces that an
// entity belongs to at most one stable at a time.
type StableHandler struct {
	Stables   *repository.StableRepo
	Lifecycle *lifecycle.Service
}

func NewStableHandler(s *repository.StableRepo, svc *lifecycle.Service) *StableHandler {
	return &StableHandler{Stables: s, Lifecycle: svc}
}

type stableReq struct {
	Name string `json:"name"`
}

type stableMemberResp struct {
	MemberType string `json:"member_type"`
	MemberID   uint64 `json:"member_id"`
	JoinedAt   string `json:"joined_at"`
}

type stableResp struct {
	ID      uint64             `json:"id"`
	Name    string             `json:"name"`
	Members []stableMemberResp `json:"members"`
}

func (h *StableHandler) detail(ctx context.Context, s *model.Stable) (stableResp, error) {
	members, err := h.Stables.CurrentMembers(ctx, s.ID)
	if err != nil {
		return stableResp{}, err
	}
	ms := make([]stableMemberResp, 0, len(members))
	for _, m := range members {
		ms = append(ms, stableMemberResp{
			MemberType: string(m.MemberType),
			MemberID:   m.MemberID,
			JoinedAt:   m.JoinedAt.Format(time.RFC3339),
		})
	}
	return stableResp{ID: s.ID, Name: s.Name, Members: ms}, nil
}

func (h *StableHandler) Create(c echo.Context) error {
	var req stableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Stable{Name: req.Name}
	if err := h.Stables.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create stable failed"})
	}
	return c.JSON(http.StatusCreated, stableResp{ID: s.ID, Name: s.Name, Members: []stableMemberResp{}})
}

func (h *StableHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stables, err := h.Stables.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list stables failed"})
	}
	out := make([]stableResp, 0, len(stables))
	for _, s := range stables {
		resp, err := h.detail(ctx, s)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load members failed"})
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StableHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Stables.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrStableNotFound)
	}
	resp, err := h.detail(ctx, s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load members failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *StableHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req stableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := &model.Stable{ID: id, Name: req.Name}
	if err := h.Stables.Update(ctx, s); err != nil {
		return repoError(c, err, repository.ErrStableNotFound)
	}
	updated, err := h.Stables.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrStableNotFound)
	}
	resp, err := h.detail(ctx, updated)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load members failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes the stable and closes its open memberships.
func (h *StableHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Stables.SoftDelete(ctx, id); err != nil {
		return repoError(c, err, repository.ErrStableNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StableHandler) Restore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Stables.Restore(ctx, id); err != nil {
		return repoError(c, err, repository.ErrStableNotFound)
	}
	s, err := h.Stables.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, repository.ErrStableNotFound)
	}
	resp, err := h.detail(ctx, s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load members failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

type stableMemberReq struct {
	MemberType    string `json:"member_type"` // WRESTLER | TAG_TEAM
	MemberID      uint64 `json:"member_id"`
	EffectiveDate string `json:"effective_date"`
}

// memberRef validates and builds the polymorphic member reference.
func memberRef(memberType string, memberID uint64) (model.EntityRef, bool) {
	t := model.EntityType(strings.ToUpper(strings.TrimSpace(memberType)))
	ref := model.EntityRef{Type: t, ID: memberID}
	if memberID == 0 || !t.IsValid() || !ref.CanJoinStable() {
		return model.EntityRef{}, false
	}
	return ref, true
}

// AddMember attaches a wrestler or tag team to the stable.
func (h *StableHandler) AddMember(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req stableMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ref, ok := memberRef(req.MemberType, req.MemberID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "member must be a wrestler or tag team"})
	}
	effective, err := parseDateString(req.EffectiveDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	membership, err := h.Lifecycle.AddStableMember(ctx, id, ref, effective)
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(http.StatusCreated, stableMemberResp{
		MemberType: string(membership.MemberType),
		MemberID:   membership.MemberID,
		JoinedAt:   membership.JoinedAt.Format(time.RFC3339),
	})
}

// RemoveMember closes the member's open membership in this stable.
func (h *StableHandler) RemoveMember(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	memberID, err := parseID(c, "member_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ref, ok := memberRef(c.Param("member_type"), memberID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "member must be a wrestler or tag team"})
	}
	effective, err := parseEffectiveDate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lifecycle.RemoveStableMember(ctx, id, ref, effective); err != nil {
		return lifecycleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
