package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klokku/finance-kanban/internal/config"
	"github.com/klokku/finance-kanban/pkg/game"
	log "github.com/sirupsen/logrus"
)

const GameIdHeader = "X-Game-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Game-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			gameIdHeader := req.Header.Get(GameIdHeader)
			ctx := req.Context()

			if gameIdHeader != "" {
				gameId, err := uuid.Parse(gameIdHeader)
				if err != nil {
					log.Debugf("invalid game id: %s", gameIdHeader)
					http.Error(w, "invalid "+GameIdHeader+" header", http.StatusBadRequest)
					return
				}
				ctx = game.WithId(ctx, gameId)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
