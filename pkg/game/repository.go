package game

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// Repository keeps live sessions. Sessions live only as long as the process.
type Repository interface {
	Store(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) int
}

type RepositoryImpl struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRepository() *RepositoryImpl {
	return &RepositoryImpl{sessions: map[uuid.UUID]*Session{}}
}

func (r *RepositoryImpl) Store(ctx context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Id] = session
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false, nil
	}
	delete(r.sessions, id)
	return true, nil
}

func (r *RepositoryImpl) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
