package session

import (
	"sync"
	"time"

	"web-assistant/internal/domain/entity"
)

// Card is one entry of a session's task board.
type Card struct {
	ID        string
	Title     string
	Status    entity.Bucket
	Detail    string
	UpdatedAt time.Time
}

type entry struct {
	mu    sync.Mutex
	sess  *entity.Session
	cards []Card
}

// Store keeps sessions in memory. Turns of one session are serialized;
// different sessions run independently.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) entry(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{sess: entity.NewSession(id)}
		s.entries[id] = e
	}
	return e
}

// acquire locks the session for one turn, creating it on first use.
func (s *Store) acquire(id string) (*entry, func()) {
	e := s.entry(id)
	e.mu.Lock()
	return e, e.mu.Unlock
}

// Cards returns the task board of a session, most recent first.
func (s *Store) Cards(id string) []Card {
	e := s.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Card(nil), e.cards...)
}

// upsert replaces the card with the same ID or puts a new one first.
func (e *entry) upsert(c Card) {
	for i := range e.cards {
		if e.cards[i].ID == c.ID {
			e.cards[i] = c
			return
		}
	}
	e.cards = append([]Card{c}, e.cards...)
}
