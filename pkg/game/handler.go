package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type NewGameDTO struct {
	Difficulty string  `json:"difficulty"`
	Housing    string  `json:"housing"`
	Seed       *uint64 `json:"seed,omitempty"`
}

type PaymentRequestDTO struct {
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	ObligationId string          `json:"obligationId"`
}

type HousingRequestDTO struct {
	Housing string `json:"housing"`
}

type WithdrawRequestDTO struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// CreateGame godoc
// @Summary Start a new game
// @Description Build a scenario from a difficulty and housing pair. Unknown keys fall back to defaults.
// @Tags Game
// @Accept json
// @Produce json
// @Param game body NewGameDTO true "Scenario choice"
// @Success 201 {object} GameDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/game [post]
func (handler *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new game")
	w.Header().Set("Content-Type", "application/json")
	var request NewGameDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	snapshot, err := handler.service.CreateGame(r.Context(), NewGame{
		Difficulty: request.Difficulty,
		Housing:    request.Housing,
		Seed:       request.Seed,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SnapshotToDTO(snapshot))
}

// GetGame godoc
// @Summary Get the current game state
// @Tags Game
// @Produce json
// @Success 200 {object} GameDTO
// @Failure 404 {string} string "Game not found"
// @Router /api/game [get]
// @Security XGameId
func (handler *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snapshot, err := handler.service.GetGame(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SnapshotToDTO(snapshot))
}

// DeleteGame godoc
// @Summary End the current game and forget its state
// @Tags Game
// @Success 204
// @Failure 404 {string} string "Game not found"
// @Router /api/game [delete]
// @Security XGameId
func (handler *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	deleted, err := handler.service.DeleteGame(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignPayment godoc
// @Summary Assign a cash or credit payment to an obligation
// @Description Rejected payments leave the game unchanged and answer with applied=false.
// @Tags Game
// @Accept json
// @Produce json
// @Param payment body PaymentRequestDTO true "Payment"
// @Success 200 {object} ActionResponseDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Game not found"
// @Router /api/game/payment [post]
// @Security XGameId
func (handler *Handler) AssignPayment(w http.ResponseWriter, r *http.Request) {
	log.Debug("Assigning payment")
	w.Header().Set("Content-Type", "application/json")
	var request PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	method := finance.Method(strings.ToLower(request.Method))
	if method != finance.Cash && method != finance.Credit {
		http.Error(w, "method must be cash or credit", http.StatusBadRequest)
		return
	}
	snapshot, applied, err := handler.service.AssignPayment(r.Context(), method, request.Amount, request.ObligationId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResponseDTO{Applied: applied, Game: SnapshotToDTO(snapshot)})
}

// UnassignPayment godoc
// @Summary Remove a payment from an obligation and refund its source
// @Tags Game
// @Produce json
// @Param paymentId path string true "Payment ID"
// @Param obligationId query string true "Obligation ID"
// @Success 200 {object} ActionResponseDTO
// @Router /api/game/payment/{paymentId} [delete]
// @Security XGameId
func (handler *Handler) UnassignPayment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	paymentId, err := uuid.Parse(mux.Vars(r)["paymentId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	obligationId := r.URL.Query().Get("obligationId")
	snapshot, applied, err := handler.service.UnassignPayment(r.Context(), paymentId, obligationId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResponseDTO{Applied: applied, Game: SnapshotToDTO(snapshot)})
}

// ChangeHousing godoc
// @Summary Move to another housing tier
// @Description The change fee and the new rent are charged at the next rollover. Moving back within the round is free.
// @Tags Game
// @Accept json
// @Produce json
// @Param housing body HousingRequestDTO true "Housing choice"
// @Success 200 {object} ActionResponseDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/game/housing [put]
// @Security XGameId
func (handler *Handler) ChangeHousing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var request HousingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snapshot, applied, err := handler.service.ChangeHousing(r.Context(), request.Housing)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResponseDTO{Applied: applied, Game: SnapshotToDTO(snapshot)})
}

// AdvanceRound godoc
// @Summary Settle the current round and start the next one
// @Tags Game
// @Produce json
// @Success 200 {object} RoundResponseDTO
// @Failure 404 {string} string "Game not found"
// @Router /api/game/round [post]
// @Security XGameId
func (handler *Handler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	log.Debug("Advancing round")
	w.Header().Set("Content-Type", "application/json")
	snapshot, summary, err := handler.service.AdvanceRound(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RoundResponseDTO{Round: RoundSummaryToDTO(summary), Game: SnapshotToDTO(snapshot)})
}

// WithdrawSavings godoc
// @Summary Move savings back to cash
// @Description Without an amount the whole account is withdrawn.
// @Tags Game
// @Accept json
// @Produce json
// @Param obligationId path string true "Savings obligation ID"
// @Param withdrawal body WithdrawRequestDTO false "Amount to withdraw"
// @Success 200 {object} ActionResponseDTO
// @Router /api/game/obligation/{obligationId}/withdraw [post]
// @Security XGameId
func (handler *Handler) WithdrawSavings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var request WithdrawRequestDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	snapshot, applied, err := handler.service.WithdrawSavings(r.Context(), mux.Vars(r)["obligationId"], request.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResponseDTO{Applied: applied, Game: SnapshotToDTO(snapshot)})
}

// BorrowDebt godoc
// @Summary Borrow one chunk against the debt account
// @Tags Game
// @Produce json
// @Param obligationId path string true "Debt obligation ID"
// @Success 200 {object} ActionResponseDTO
// @Router /api/game/obligation/{obligationId}/borrow [post]
// @Security XGameId
func (handler *Handler) BorrowDebt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snapshot, applied, err := handler.service.BorrowDebt(r.Context(), mux.Vars(r)["obligationId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ActionResponseDTO{Applied: applied, Game: SnapshotToDTO(snapshot)})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoGame):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("game request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
