// Package session keeps the per-user editing state. Each session owns its
// profile store and its own rewrite busy flag, so one user's in-flight
// rewrite never blocks another session.
package session

import (
	"sync"

	"github.com/google/uuid"

	"resume-architect/internal/model"
	"resume-architect/internal/profile"
	"resume-architect/internal/rewrite"
)

type Session struct {
	ID       uuid.UUID
	Store    *profile.Store
	Rewriter *rewrite.Orchestrator
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	gen      rewrite.TextGenerator
}

func NewRegistry(gen rewrite.TextGenerator) *Registry {
	return &Registry{sessions: map[uuid.UUID]*Session{}, gen: gen}
}

// Create starts a session seeded with the illustrative default profile so
// the first preview is never blank.
func (r *Registry) Create() *Session {
	store := profile.NewStore(model.DefaultProfile())
	s := &Session{
		ID:       uuid.New(),
		Store:    store,
		Rewriter: rewrite.NewOrchestrator(store, r.gen),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
