package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/venntower/pkg/buildinfo"
	"github.com/matzehuels/venntower/pkg/decompose"
	"github.com/matzehuels/venntower/pkg/errors"
	"github.com/matzehuels/venntower/pkg/httputil"
	vio "github.com/matzehuels/venntower/pkg/io"
	"github.com/matzehuels/venntower/pkg/pipeline"
	"github.com/matzehuels/venntower/pkg/recompose"
	"github.com/matzehuels/venntower/pkg/store"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	var resp StrategiesResponse
	for _, st := range decompose.Strategies() {
		resp.Decomposition = append(resp.Decomposition, StrategyInfo{
			Name:        st.String(),
			Description: st.Description(),
			Default:     st == decompose.DefaultStrategy,
		})
	}
	for _, st := range recompose.Strategies() {
		resp.Recomposition = append(resp.Recomposition, StrategyInfo{
			Name:        st.String(),
			Description: st.Description(),
			Default:     st == recompose.DefaultStrategy,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if req.Save && s.store == nil {
		httputil.WriteError(w, s.logger, errors.New(errors.ErrCodeUnsupported, "run storage is disabled"))
		return
	}

	src, err := requestSource(req)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	d, err := pipeline.Parse(src)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	opts := pipeline.Options{
		Decomposition: req.Decomposition,
		Recomposition: req.Recomposition,
		Formats:       req.Formats,
		Detailed:      req.Detailed,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	start := time.Now()
	res, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	resp := RunResponse{
		Hash:                  res.Hash,
		Sentence:              d.Sentence(),
		Decomposition:         opts.Decomposition,
		Recomposition:         opts.Recomposition,
		Steps:                 res.Stats.Steps,
		CurvesAdded:           res.Stats.CurvesAdded,
		DecompositionChecksum: res.Stats.DecompositionChecksum,
		Checksum:              res.Checksum,
		Plan:                  vio.BuildPlan(res.Recomposition),
		Artifacts:             make(map[string]string, len(res.Artifacts)),
		Cached:                res.CacheInfo.RenderHit,
		Duration:              time.Since(start),
	}
	for format, data := range res.Artifacts {
		if format != pipeline.FormatJSON {
			resp.Artifacts[format] = string(data)
		}
	}

	status := http.StatusOK
	if req.Save {
		run, err := store.NewRun(res, opts.Decomposition, opts.Recomposition, s.runTTL)
		if err != nil {
			httputil.WriteError(w, s.logger, err)
			return
		}
		if err := s.store.Put(r.Context(), run); err != nil {
			httputil.WriteError(w, s.logger, err)
			return
		}
		resp.ID = run.ID
		status = http.StatusCreated
		w.Header().Set("Location", "/v1/runs/"+run.ID)
	}
	httputil.WriteJSON(w, status, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			httputil.WriteError(w, s.logger, errors.New(errors.ErrCodeInvalidInput, "limit must be between 1 and 500"))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	httputil.WriteJSON(w, http.StatusOK, RunList{Runs: runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRunArtifact re-executes a stored run in one format. Rendered
// artifacts are cached by the runner, so repeated requests are cheap.
func (s *Server) handleRunArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	d, err := pipeline.Parse(run.Source())
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), d, pipeline.Options{
		Decomposition: run.Decomposition,
		Recomposition: run.Recomposition,
		Formats:       []string{format},
		Detailed:      r.URL.Query().Get("detailed") == "true",
	})
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// requestSource picks the description out of a run request. A TOML
// description travels as a JSON string.
func requestSource(req RunRequest) (pipeline.Source, error) {
	if req.Description == nil {
		return pipeline.Source{Notation: req.Notation}, nil
	}
	switch vio.Format(req.Format) {
	case vio.FormatTOML:
		var text string
		if err := json.Unmarshal(req.Description, &text); err != nil {
			return pipeline.Source{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "description: TOML must be sent as a JSON string")
		}
		return pipeline.Source{Data: []byte(text), Format: vio.FormatTOML}, nil
	default:
		return pipeline.Source{Data: req.Description, Format: vio.FormatJSON}, nil
	}
}
