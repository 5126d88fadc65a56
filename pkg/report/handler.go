package report

import (
	"encoding/json"
	"net/http"

	"github.com/klokku/finance-kanban/internal/rest"
	"github.com/klokku/finance-kanban/pkg/game"
)

type HistoryDTO struct {
	GameId        string                 `json:"gameId"`
	DifficultyKey string                 `json:"difficultyKey,omitempty"`
	HousingKey    string                 `json:"housingKey,omitempty"`
	Seed          uint64                 `json:"seed,omitempty"`
	Rounds        []game.RoundSummaryDTO `json:"rounds"`
	HousingMoves  []HousingMoveDTO       `json:"housingMoves"`
	Outcome       string                 `json:"outcome,omitempty"`
	OutcomeRound  *int                   `json:"outcomeRound,omitempty"`
}

type HousingMoveDTO struct {
	Round      int    `json:"round"`
	HousingKey string `json:"housingKey"`
	Surcharge  string `json:"surcharge"`
}

type HistoryHandler struct {
	history  *History
	renderer HistoryRenderer
}

func NewHistoryHandler(history *History, renderer HistoryRenderer) *HistoryHandler {
	return &HistoryHandler{history, renderer}
}

// GetHistory godoc
// @Summary Get the settled rounds of the current game
// @Description Answers with CSV when the request accepts text/csv.
// @Tags Game
// @Produce json,text/csv
// @Success 200 {object} HistoryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/game/history [get]
// @Security XGameId
func (handler *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	gameId, err := game.CurrentId(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Missing game",
			Details: "X-Game-Id header must name a game",
		}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	record, _ := handler.history.Game(gameId)

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.renderer.RenderHistory(record.Rounds)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	response := HistoryDTO{
		GameId:        gameId.String(),
		DifficultyKey: record.DifficultyKey,
		HousingKey:    record.HousingKey,
		Seed:          record.Seed,
		Rounds:        make([]game.RoundSummaryDTO, 0, len(record.Rounds)),
		HousingMoves:  make([]HousingMoveDTO, 0, len(record.HousingMoves)),
		Outcome:       record.Outcome,
		OutcomeRound:  record.OutcomeRound,
	}
	for _, round := range record.Rounds {
		response.Rounds = append(response.Rounds, game.RoundSummaryToDTO(round))
	}
	for _, move := range record.HousingMoves {
		response.HousingMoves = append(response.HousingMoves, HousingMoveDTO(move))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
