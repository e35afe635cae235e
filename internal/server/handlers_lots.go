package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// lotRequest is the JSON body for creating a lot.
type lotRequest struct {
	Metal        string  `json:"metal"`
	Purity       float64 `json:"purity"`
	WeightGrams  float64 `json:"weight_grams"`
	TotalPaid    float64 `json:"total_paid"`
	PurchaseDate string  `json:"purchase_date"` // YYYY-MM-DD
	Status       string  `json:"status,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

func (req *lotRequest) toLot() (*models.Lot, error) {
	metal := strings.ToUpper(strings.TrimSpace(req.Metal))
	if metal == "" {
		return nil, fmt.Errorf("metal is required")
	}
	if req.WeightGrams <= 0 {
		return nil, fmt.Errorf("weight_grams must be positive")
	}
	if req.Purity <= 0 || req.Purity > 1 {
		return nil, fmt.Errorf("purity must be a fraction in (0, 1]")
	}
	if req.TotalPaid < 0 {
		return nil, fmt.Errorf("total_paid cannot be negative")
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("purchase_date must be YYYY-MM-DD")
	}
	if purchaseDate.After(time.Now().UTC()) {
		return nil, fmt.Errorf("purchase_date cannot be in the future")
	}

	status := models.LotStatus(req.Status)
	if status == "" {
		status = models.LotStatusHold
	}
	if !models.ValidLotStatus(status) {
		return nil, fmt.Errorf("status must be one of hold, sold, gifted")
	}

	return &models.Lot{
		Metal:        metal,
		Purity:       req.Purity,
		WeightGrams:  req.WeightGrams,
		TotalPaid:    req.TotalPaid,
		PurchaseDate: purchaseDate.UTC(),
		Status:       status,
		Notes:        req.Notes,
	}, nil
}

// handleLots serves GET (list) and POST (create) on /api/lots.
func (s *Server) handleLots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleLotList(w, r)
	case http.MethodPost:
		s.handleLotCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleLotList(w http.ResponseWriter, r *http.Request) {
	var (
		lots []models.Lot
		err  error
	)

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.LotStatus(raw)
		if !models.ValidLotStatus(status) {
			WriteError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		lots, err = s.app.Storage.LotStore().ListByStatus(r.Context(), status)
	} else {
		lots, err = s.app.Storage.LotStore().List(r.Context())
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing lots: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(lots),
		"lots":  lots,
	})
}

func (s *Server) handleLotCreate(w http.ResponseWriter, r *http.Request) {
	var req lotRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	lot, err := req.toLot()
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.Storage.LotStore().Save(r.Context(), lot); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error saving lot: %v", err))
		return
	}

	WriteJSON(w, http.StatusCreated, lot)
}

func (s *Server) handleLotGet(w http.ResponseWriter, r *http.Request, id string) {
	lot, err := s.app.Storage.LotStore().Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Lot not found: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, lot)
}

// handleLotUpdate applies partial updates: status and notes only. Weight and
// cost are immutable once recorded.
func (s *Server) handleLotUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	lot, err := s.app.Storage.LotStore().Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Lot not found: %v", err))
		return
	}

	if req.Status != nil {
		status := models.LotStatus(*req.Status)
		if !models.ValidLotStatus(status) {
			WriteError(w, http.StatusBadRequest, "status must be one of hold, sold, gifted")
			return
		}
		lot.Status = status
	}
	if req.Notes != nil {
		lot.Notes = *req.Notes
	}

	if err := s.app.Storage.LotStore().Save(r.Context(), lot); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error updating lot: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, lot)
}

func (s *Server) handleLotDelete(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := s.app.Storage.LotStore().Get(r.Context(), id); err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Lot not found: %v", err))
		return
	}

	if err := s.app.Storage.LotStore().Delete(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error deleting lot: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}
