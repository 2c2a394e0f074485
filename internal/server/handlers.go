package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"StockRadar/internal/dashboard"
	"StockRadar/internal/model"
	"StockRadar/internal/research"
	"StockRadar/internal/screener"
)

// maxUploadBytes bounds research PDF uploads.
const maxUploadBytes = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"source": s.dash.SourceName(),
	})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Watchlist())
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	added, err := s.dash.AddTicker(chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	removed, err := s.dash.RemoveTicker(chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleRadarSweep(w http.ResponseWriter, r *http.Request) {
	var tickers []string
	if q := r.URL.Query().Get("tickers"); q != "" {
		tickers = strings.Split(q, ",")
	}
	s.writeJSON(w, http.StatusOK, s.dash.RadarSweep(r.Context(), tickers...))
}

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	rep, err := s.dash.Radar(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRadarHistory(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	rows, err := s.dash.RadarHistory(chi.URLParam(r, "ticker"), limit)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	rep, err := s.dash.Score(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	rep, err := s.dash.News(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	img, err := s.dash.Chart(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

type marketSummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Size  int    `json:"size"`
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	markets := s.dash.Markets()
	out := make([]marketSummary, len(markets))
	for i, m := range markets {
		out[i] = marketSummary{ID: m.ID, Label: m.Label, Size: len(m.Tickers)}
	}
	s.writeJSON(w, http.StatusOK, out)
}

// screenRequest leaves a criterion nil when the body omits it.
type screenRequest struct {
	Market string   `json:"market"`
	MinROE *float64 `json:"min_roe"`
	MaxPE  *float64 `json:"max_pe"`
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c := screener.DefaultCriteria
	if req.MinROE != nil {
		c.MinROE = *req.MinROE
	}
	if req.MaxPE != nil {
		c.MaxPE = *req.MaxPE
	}

	rows, err := s.dash.Screen(r.Context(), req.Market, c)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	if rows == nil {
		rows = []model.ScreenResult{}
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "expected a multipart upload under 32MB")
		return
	}
	lang, err := research.ParseLang(r.FormValue("lang"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read upload")
		return
	}

	rep, err := s.dash.Research(r.Context(), bytes.NewReader(data), int64(len(data)), lang)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", requestIDFrom(r.Context())).Msg("research report failed")
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// statusFor maps dashboard errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrEmptyTicker), errors.Is(err, dashboard.ErrUnknownMarket):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrResearchDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, research.ErrNoText), errors.Is(err, research.ErrInvalidPDF):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
