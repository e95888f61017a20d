package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridlock/pkg/buildinfo"
	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type levelSummary struct {
	Level    int      `json:"level"`
	Name     string   `json:"name"`
	Vehicles int      `json:"vehicles"`
	Rows     []string `json:"rows"`
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := puzzle.Levels()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]levelSummary, len(levels))
	for i, p := range levels {
		out[i] = levelSummary{
			Level:    i + 1,
			Name:     p.Name,
			Vehicles: p.Layout.VehicleCount(),
			Rows:     p.Rows(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidLevel, "level must be a number, got %q", chi.URLParam(r, "n")))
		return
	}
	if err := errs.ValidateLevel(n, puzzle.LevelCount()); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.Options{Level: n}
	if opts.Solve, err = queryBool(r, "solve"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Explain, err = queryBool(r, "explain"); err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.runner.Evaluate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.runner.Evaluate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExplainDOT(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Explain = true

	report, err := s.runner.Evaluate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	detailed, err := queryBool(r, "detailed")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dot, err := pipeline.RenderTree(r.Context(), report, pipeline.FormatDOT, detailed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dot)
}

func decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return opts, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.New(errs.ErrCodeInvalidInput, "query parameter %s must be a boolean, got %q", name, v)
	}
	return b, nil
}
