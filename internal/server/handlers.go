package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
	"github.com/intellinez-com/GoldTrack-sub000/internal/services/advisor"
	"github.com/intellinez-com/GoldTrack-sub000/internal/signals"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetFullVersion(),
	})
}

// --- Metal handlers ---

func (s *Server) handleMetalList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	currency := s.app.Config.Currency
	type metalEntry struct {
		Metal        string  `json:"metal"`
		Currency     string  `json:"currency"`
		PricePerGram float64 `json:"price_per_gram"`
	}

	entries := make([]metalEntry, 0, len(s.app.Config.Metals))
	for _, metal := range s.app.Config.Metals {
		entries = append(entries, metalEntry{
			Metal:        metal,
			Currency:     currency,
			PricePerGram: s.app.SeriesService.LatestPrice(r.Context(), metal, currency),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"metals": entries,
	})
}

func (s *Server) handleMetalSeries(w http.ResponseWriter, r *http.Request, metal string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	days := s.app.Config.HistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	currency := s.app.Config.Currency
	points := s.app.SeriesService.GetSeries(r.Context(), metal, currency, days, refresh)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"metal":    metal,
		"currency": currency,
		"count":    len(points),
		"points":   points,
	})
}

func (s *Server) handleMetalReport(w http.ResponseWriter, r *http.Request, metal string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	currency := s.app.Config.Currency
	refresh := r.URL.Query().Get("refresh") == "true"

	points := s.app.SeriesService.GetSeries(r.Context(), metal, currency, s.app.Config.HistoryDays, refresh)

	report, err := signals.Analyze(points)
	if err != nil {
		if errors.Is(err, signals.ErrInsufficientData) {
			WriteError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("Not enough history for %s: %d of %d required points", metal, len(points), signals.MinPoints))
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis error: %v", err))
		return
	}
	report.Metal = metal

	health := s.app.AdvisorService.HealthScore(r.Context(), metal, report.TechnicalScore)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"report": report,
		"health": health,
	})
}

func (s *Server) handleMetalAdvice(w http.ResponseWriter, r *http.Request, metal string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	mode := models.InvestMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = models.ModeSIP
	}
	if !models.ValidInvestMode(mode) {
		WriteError(w, http.StatusBadRequest, "Invalid mode: use LUMPSUM or SIP")
		return
	}

	var allocation float64
	if raw := r.URL.Query().Get("allocation"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			WriteError(w, http.StatusBadRequest, "Invalid allocation parameter")
			return
		}
		allocation = parsed
	}

	currency := s.app.Config.Currency
	points := s.app.SeriesService.GetSeries(r.Context(), metal, currency, s.app.Config.HistoryDays, false)

	var price, sma50, sma200 float64
	if len(points) > 0 {
		price = points[len(points)-1].Price
	}
	sma50 = signals.SMA(points, 50)
	sma200 = signals.SMA(points, 200)

	advice := advisor.Advise(price, sma50, sma200, mode, allocation)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"metal":    metal,
		"currency": currency,
		"mode":     mode,
		"advice":   advice,
	})
}

// --- Portfolio handlers ---

func (s *Server) handlePortfolioReturns(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, err := s.app.ReturnsService.PortfolioReturns(r.Context(), s.app.Config.Currency)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Returns error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
