package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// MarksDependencies defines what the page API reads.
type MarksDependencies interface {
	Chart(name string) (*chart.Chart, error)
	Pages() []PageStatus
	Hover(ctx context.Context, name string, index int, p tooltip.Pointer) (HoverResult, error)
}

// MarksHandler serves page listings, mark view models and hover replays.
type MarksHandler struct {
	deps MarksDependencies
}

// NewMarksHandler creates a new marks handler.
func NewMarksHandler(deps MarksDependencies) *MarksHandler {
	return &MarksHandler{deps: deps}
}

type marksResponse struct {
	Page      string            `json:"page"`
	Title     string            `json:"title"`
	Count     int               `json:"count"`
	Placement tooltip.Placement `json:"placement"`
	Marks     []chart.Mark      `json:"marks"`
}

// HandleListPages handles GET /api/pages.
func (h *MarksHandler) HandleListPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Pages())
}

// HandlePageAPI handles GET /api/pages/{name}/marks and
// GET /api/pages/{name}/marks/{index}/hover?x=&y=.
func (h *MarksHandler) HandlePageAPI(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_page_marks"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/pages/"), "/"), "/")
	switch {
	case len(parts) == 2 && parts[1] == "marks":
		h.marks(w, parts[0])
	case len(parts) == 4 && parts[1] == "marks" && parts[3] == "hover":
		h.hover(w, r, parts[0], parts[2])
	default:
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
	}
}

func (h *MarksHandler) marks(w http.ResponseWriter, name string) {
	const op = "api.get_page_marks"
	c, err := h.deps.Chart(name)
	if err != nil {
		writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, marksResponse{
		Page:      c.Name,
		Title:     c.Title,
		Count:     len(c.Marks),
		Placement: c.Placement,
		Marks:     c.Marks,
	})
}

func (h *MarksHandler) hover(w http.ResponseWriter, r *http.Request, name, rawIndex string) {
	const op = "api.hover_mark"
	index, err := strconv.Atoi(rawIndex)
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := pointer(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Hover(r.Context(), name, index, p)
	if err != nil {
		writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// pointer reads ?x=&y= as the offset of the pointer in the chart container.
// Missing coordinates are zero.
func pointer(r *http.Request) (tooltip.Pointer, error) {
	var p tooltip.Pointer
	q := r.URL.Query()
	for key, dst := range map[string]*float64{"x": &p.OffsetX, "y": &p.OffsetY} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return tooltip.Pointer{}, err
		}
		*dst = v
	}
	return p, nil
}
