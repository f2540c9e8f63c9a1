package api

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/okian/vizpages/internal/adapters/render"
	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/pkg/logger"
	"github.com/okian/vizpages/pkg/metrics"
)

const svgSuffix = "/chart.svg"

// PageDependencies defines what the page handler reads.
type PageDependencies interface {
	Chart(name string) (*chart.Chart, error)
}

// PageHandler serves rendered pages.
type PageHandler struct {
	deps PageDependencies
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps PageDependencies) *PageHandler {
	return &PageHandler{deps: deps}
}

// HandlePage handles GET /pages/{name} and GET /pages/{name}/chart.svg.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_page"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/pages/")
	format := "html"
	if strings.HasSuffix(name, svgSuffix) {
		name = strings.TrimSuffix(name, svgSuffix)
		format = "svg"
	}
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	c, err := h.deps.Chart(name)
	if err != nil {
		writeLookupError(w, op, err)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if format == "svg" {
		err = render.SVG(&buf, c)
	} else {
		err = render.Page(&buf, c)
	}
	if err != nil {
		logger.Get().Error(r.Context(), "render failed",
			logger.String("page", name),
			logger.String("format", format),
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err))
		metrics.RecordErrorByComponent("render", format)
		writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrRender, err))
		return
	}
	metrics.RecordRender(name, format)
	metrics.RecordRenderDuration(name, format, float64(time.Since(start).Microseconds())/1000)

	if format == "svg" {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
