package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
	"github.com/researchaccelerator-hub/youtube-tracker/insight"
	"github.com/researchaccelerator-hub/youtube-tracker/metrics"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

const defaultWindowDays = 30

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("channel")
	if input == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "channel parameter is required"})
		return
	}

	channelID, err := s.ingestor.Resolver().Resolve(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"channelId": channelID})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "channel")
	days := queryDays(r, 0)
	backfill := r.URL.Query().Get("backfill") == "true"

	mode := model.Incremental
	if backfill {
		mode = model.Backfill
	}

	var since time.Time
	if days > 0 {
		since = time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	}

	result, err := s.ingestor.Ingest(r.Context(), input, since, mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChannelMetrics(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "channel")
	days := queryDays(r, defaultWindowDays)

	channelID, rows, err := s.ingestor.ChannelRows(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	report := metrics.Compute(rows, days, time.Now())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"channelId": channelID,
		"byDay":     report.ByDay,
		"rows":      report.Rows,
		"top":       report.Top,
		"total":     report.Total,
	})
}

func (s *Server) handleChannelMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.ingestor.Meta(r.Context(), chi.URLParam(r, "channel"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleKeywordMetrics(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("keywords")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "keywords parameter is required"})
		return
	}
	var keywords []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	days := queryDays(r, defaultWindowDays)

	rows, err := s.searcher.Search(r.Context(), keywords, days)
	if err != nil {
		writeError(w, err)
		return
	}

	report := metrics.ComputeKeyword(strings.Join(keywords, " "), rows, days, time.Now())
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	if s.chain == nil {
		writeError(w, errs.Configf("no narrative provider configured"))
		return
	}

	input := chi.URLParam(r, "channel")
	days := queryDays(r, defaultWindowDays)

	_, rows, err := s.ingestor.ChannelRows(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	report := metrics.Compute(rows, days, time.Now())
	sample := s.buildSample(report.Rows)

	result, err := s.chain.Summarize(r.Context(), sample, days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) buildSample(rows []model.VideoRecord) []insight.SampleRow {
	return insight.BuildSample(rows, s.cfg.Insight.SampleMaxRows, s.cfg.Insight.SampleTitleLen)
}

func queryDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindQuotaExceeded:
		status = http.StatusTooManyRequests
	case errs.KindUpstream, errs.KindProvider:
		status = http.StatusBadGateway
	case errs.KindConfig:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
