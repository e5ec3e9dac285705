// Package session holds the per-user mutable UI state between interactions:
// the selected location, the fetched forecast table, and the last results.
// State is owned by the presentation layer and passed by reference into the
// core; nothing here is shared between sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Deekshith1804/gnss2/internal/models"
)

// CookieName identifies the session in the browser.
const CookieName = "smartnav_session"

// State is one user's dashboard state. It lives in memory only.
type State struct {
	ID string

	Location   *models.Place
	Forecast   []models.ForecastEntry
	KpHistory  []models.KpEntry
	Prediction *models.Prediction
	Route      *models.LabeledRoute
	LastActive time.Time
}

// ForecastTimes lists the selectable forecast timestamps.
func (s *State) ForecastTimes() []time.Time {
	times := make([]time.Time, 0, len(s.Forecast))
	for _, e := range s.Forecast {
		times = append(times, e.Time)
	}
	return times
}

// Store maps session IDs to their state. The mutex guards only the map;
// individual sessions are single-user by construction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*State
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

// Get returns the state for an ID, or false when unknown.
func (st *Store) Get(id string) (*State, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if ok {
		s.LastActive = time.Now()
	}
	return s, ok
}

// Create registers a fresh session with a new identifier.
func (st *Store) Create() *State {
	s := &State{
		ID:         uuid.NewString(),
		LastActive: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
