package game

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const GameIdKey contextKey = "gameId"

var ErrNoGame = errors.New("game id not found in context")

// CurrentId retrieves the game id selected for the request.
func CurrentId(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(GameIdKey).(uuid.UUID)
	if !ok {
		log.Trace("game id not found in context")
		return uuid.Nil, ErrNoGame
	}
	return id, nil
}

func WithId(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, GameIdKey, id)
}
