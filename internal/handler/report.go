package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ReportHandler covers movie problem reports. Any authenticated user
// can file a report and list their own; the open-report queue and the
// resolve action are staff-only. Resolution is one-way: resolving an
// already-resolved report answers 409.
type ReportHandler struct {
	Reports *repository.ReportRepo
	Movies  *repository.MovieRepo
}

func NewReportHandler(r *repository.ReportRepo, m *repository.MovieRepo) *ReportHandler {
	return &ReportHandler{Reports: r, Movies: m}
}

type reportReq struct {
	MovieID     uint64 `json:"movie_id" validate:"required"`
	ReportKind  string `json:"report_kind" validate:"required"`
	Description string `json:"description" validate:"required,max=2000"`
}

type reportResp struct {
	ID          uint64     `json:"id"`
	MovieID     uint64     `json:"movie_id"`
	UserID      uint64     `json:"user_id"`
	ReportKind  string     `json:"report_kind"`
	Description string     `json:"description"`
	IsResolved  bool       `json:"is_resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func toReportResp(r model.MovieReport) reportResp {
	return reportResp{
		ID:          r.ID,
		MovieID:     r.MovieID,
		UserID:      r.UserID,
		ReportKind:  r.ReportKind,
		Description: r.Description,
		IsResolved:  r.IsResolved,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

// Create files a report against a movie. The reporter is always the
// authenticated user.
func (h *ReportHandler) Create(c echo.Context) error {
	var req reportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	kind := strings.ToUpper(req.ReportKind)
	if !model.ValidReportKind(kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown report kind"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Movies.Exists(ctx, req.MovieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	rep := model.MovieReport{
		MovieID:     req.MovieID,
		UserID:      actor(c).ID,
		ReportKind:  kind,
		Description: req.Description,
	}
	if err := h.Reports.Create(ctx, &rep); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create report failed"})
	}
	return c.JSON(http.StatusCreated, toReportResp(rep))
}

// ListMine returns the reports the caller has filed, newest first.
func (h *ReportHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reports, err := h.Reports.ListByUser(ctx, actor(c).ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reports failed"})
	}
	return c.JSON(http.StatusOK, toReportResps(reports))
}

// ListOpen returns the unresolved report queue for staff, oldest
// first.
func (h *ReportHandler) ListOpen(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reports, err := h.Reports.ListOpen(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reports failed"})
	}
	return c.JSON(http.StatusOK, toReportResps(reports))
}

// Resolve marks a report resolved (staff only).
func (h *ReportHandler) Resolve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reports.Resolve(ctx, id); err != nil {
		switch err {
		case repository.ErrReportNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "report already resolved"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve report failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func toReportResps(reports []model.MovieReport) []reportResp {
	out := make([]reportResp, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResp(r))
	}
	return out
}
