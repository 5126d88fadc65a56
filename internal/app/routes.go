package app

import (
	"github.com/gorilla/mux"
	"github.com/klokku/finance-kanban/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Game session
	r.HandleFunc("/api/game", deps.GameHandler.CreateGame).Methods("POST")
	r.HandleFunc("/api/game", deps.GameHandler.GetGame).Methods("GET")
	r.HandleFunc("/api/game", deps.GameHandler.DeleteGame).Methods("DELETE")
	r.HandleFunc("/api/game/round", deps.GameHandler.AdvanceRound).Methods("POST")
	r.HandleFunc("/api/game/housing", deps.GameHandler.ChangeHousing).Methods("PUT")

	// Payments
	r.HandleFunc("/api/game/payment", deps.GameHandler.AssignPayment).Methods("POST")
	r.HandleFunc("/api/game/payment/{paymentId}", deps.GameHandler.UnassignPayment).Queries("obligationId", "{obligationId}").Methods("DELETE")

	// Savings and debt accounts
	r.HandleFunc("/api/game/obligation/{obligationId}/withdraw", deps.GameHandler.WithdrawSavings).Methods("POST")
	r.HandleFunc("/api/game/obligation/{obligationId}/borrow", deps.GameHandler.BorrowDebt).Methods("POST")

	// History
	r.HandleFunc("/api/game/history", deps.HistoryHandler.GetHistory).Methods("GET")
}
