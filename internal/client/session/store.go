// Package session holds the authenticated user for the lifetime of the
// client process.
//
// A Store is created once by the shell and handed to the rest of the program
// as two narrow capabilities: views that display identity get a Getter,
// flows that authenticate get a Setter. Nothing reaches the store through
// package-level state.
package session

import (
	"sync"

	"github.com/dmitrijs2005/authshell/internal/client/models"
)

// Getter reads the current session.
type Getter interface {
	Get() models.Session
}

// Setter replaces the current user. A nil user clears the session.
type Setter interface {
	Set(user *models.UserRecord)
}

// Listener is called with the new session after every Set.
type Listener func(models.Session)

// Store is a single mutable slot holding at most one user.
// The zero value is not usable; call NewStore.
type Store struct {
	mu        sync.RWMutex
	current   models.Session
	nextID    int
	listeners map[int]Listener
	order     []int
}

var (
	_ Getter = (*Store)(nil)
	_ Setter = (*Store)(nil)
)

// NewStore returns an empty store: nobody is signed in.
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

func (s *Store) Get() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set stores user as-is, without validation, and notifies listeners in
// subscription order. Listeners run on the caller's goroutine after the lock
// is released, so they may call Get.
func (s *Store) Set(user *models.UserRecord) {
	s.mu.Lock()
	s.current = models.Session{User: user}
	snapshot := s.current
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// Subscribe registers l and returns a func that removes it.
// Calling the returned func more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
