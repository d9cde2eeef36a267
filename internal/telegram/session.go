package telegram

import (
	"sync"

	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
	"github.com/Rl0h4w/mealty-food-creator/internal/planner"
)

// step is the questionnaire position of a session.
type step int

const (
	stepWeight step = iota
	stepHeight
	stepAge
	stepGender
	stepBodyFatKnown
	stepBodyFat
	stepWaist
	stepNeck
	stepHip
	stepActivity
	stepGoal
	stepExclusions
	stepReview
)

// session holds one user's questionnaire answers and, once planning starts,
// the week state machine. Sessions are never shared across chats, but one
// chat's updates are handled on separate goroutines, so mu serializes all
// field access below it.
type session struct {
	mu sync.Mutex

	step step

	weight  float64
	height  float64
	age     int
	gender  nutrition.Gender
	bodyFat *float64
	waist   float64
	neck    float64
	hip     float64

	activity   nutrition.ActivityLevel
	goal       nutrition.Goal
	exclusions []string

	target nutrition.Target
	week   *planner.Week
}

// sessionStore is an in-memory session registry keyed by chat ID.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

func (s *sessionStore) get(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[chatID]
}

// reset replaces any existing session with a fresh one and returns it.
func (s *sessionStore) reset(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &session{step: stepWeight}
	s.sessions[chatID] = sess
	return sess
}

func (s *sessionStore) delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
