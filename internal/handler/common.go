package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
	"github.com/iliyamo/wrestling-roster/internal/repository"
)

// parseID extracts a positive uint64 path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// effectiveDateReq is the shared request body of every transition and
// membership endpoint.  The date is optional; an absent or empty value
// means "now".
type effectiveDateReq struct {
	EffectiveDate string `json:"effective_date"`
}

// parseEffectiveDate reads the optional effective_date from the request
// body.  Plain dates (2024-01-15) and RFC 3339 timestamps are accepted;
// plain dates resolve to midnight UTC.
func parseEffectiveDate(c echo.Context) (*time.Time, error) {
	var req effectiveDateReq
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("invalid body")
	}
	return parseDateString(req.EffectiveDate)
}

// parseDateString parses an optional effective date already pulled out of
// a bound request body.  Empty means "now" (nil).
func parseDateString(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, errors.New("invalid effective_date")
}

// currentUserID pulls the authenticated user's ID out of the context set
// by the JWT middleware.  Returns 0 for unauthenticated requests.
func currentUserID(c echo.Context) uint64 {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// lifecycleError translates lifecycle and repository failures into HTTP
// responses.  Illegal transitions and membership conflicts map to 409 so
// clients can distinguish a rule rejection from bad input.
func lifecycleError(c echo.Context, err error) error {
	var trErr *lifecycle.TransitionError
	switch {
	case errors.As(err, &trErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": trErr.Error()})
	case errors.Is(err, lifecycle.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, lifecycle.ErrNoCurrentChampion),
		errors.Is(err, lifecycle.ErrAlreadyPartner),
		errors.Is(err, lifecycle.ErrAlreadyInStable),
		errors.Is(err, lifecycle.ErrLedgerViolation),
		errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// repoError maps a repository lookup failure to 404 when it matches the
// given not-found sentinel, 500 otherwise.
func repoError(c echo.Context, err, notFound error) error {
	if errors.Is(err, notFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	}
	if errors.Is(err, repository.ErrConflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
