package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/dashboard"
	"github.com/sells-group/wellplay/internal/filter"
	"github.com/sells-group/wellplay/internal/model"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return eris.Wrap(err, "api: decode body")
	}
	return nil
}

// defaults returns a private copy of the configured criteria for a request
// body to be decoded over, so omitted fields keep their defaults.
func (s *Server) defaults() *model.FilterCriteria {
	c := s.cfg.Defaults.Clone()
	return &c
}

// run filters the snapshot. A nil criteria uses the configured defaults.
func (s *Server) run(c *model.FilterCriteria) (*filter.Result, error) {
	criteria := s.cfg.Defaults
	if c != nil {
		criteria = *c
	}

	start := time.Now()
	res, err := filter.Run(s.snap.Wells, criteria, s.cfg.TopOperators, filter.WithSeed(s.cfg.Seed))
	if err != nil {
		return nil, err
	}
	s.metrics.filterDuration.Observe(time.Since(start).Seconds())
	s.metrics.rowsReturned.Observe(float64(len(res.Wells)))
	return res, nil
}

func (s *Server) writeFilterError(w http.ResponseWriter, err error) {
	if eris.Is(err, filter.ErrInvalidCriteria) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	zap.L().Error("api: filter failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"snapshot_id": s.snap.ID,
		"wells":       len(s.snap.Wells),
	})
}

type optionsResponse struct {
	SnapshotID string               `json:"snapshot_id"`
	LoadedAt   time.Time            `json:"loaded_at"`
	Wells      int                  `json:"wells"`
	SubPlays   []model.SubPlay      `json:"sub_plays"`
	FluidTypes []model.FluidType    `json:"fluid_types"`
	Defaults   model.FilterCriteria `json:"defaults"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		SnapshotID: s.snap.ID,
		LoadedAt:   s.snap.LoadedAt,
		Wells:      len(s.snap.Wells),
		SubPlays:   model.SubPlays(),
		FluidTypes: model.AllFluidTypes(),
		Defaults:   s.cfg.Defaults,
	})
}

type viewsRequest struct {
	Criteria  *model.FilterCriteria `json:"criteria"`
	Selection dashboard.Selection   `json:"selection"`
	Operator  string                `json:"operator"`
}

type viewsResponse struct {
	SnapshotID string            `json:"snapshot_id"`
	Report     *dashboard.Report `json:"report"`
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	req := viewsRequest{Criteria: s.defaults()}
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.run(req.Criteria)
	if err != nil {
		s.writeFilterError(w, err)
		return
	}

	report, err := dashboard.Build(res, req.Selection, req.Operator, s.cfg.Dashboard)
	if err != nil {
		zap.L().Error("api: build report", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewsResponse{SnapshotID: s.snap.ID, Report: report})
}

type recordsRequest struct {
	Criteria *model.FilterCriteria `json:"criteria"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

type recordsResponse struct {
	SnapshotID string               `json:"snapshot_id"`
	Total      int                  `json:"total"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
	Wells      []model.EnrichedWell `json:"wells"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	req := recordsRequest{Criteria: s.defaults()}
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Offset < 0 || req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit and offset must be non-negative")
		return
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	req.Limit = min(req.Limit, MaxLimit)

	res, err := s.run(req.Criteria)
	if err != nil {
		s.writeFilterError(w, err)
		return
	}

	total := len(res.Wells)
	lo := min(req.Offset, total)
	hi := min(lo+req.Limit, total)
	writeJSON(w, http.StatusOK, recordsResponse{
		SnapshotID: s.snap.ID,
		Total:      total,
		Limit:      req.Limit,
		Offset:     req.Offset,
		Wells:      res.Wells[lo:hi],
	})
}
