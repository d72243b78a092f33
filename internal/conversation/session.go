package conversation

import (
	"fmt"
	"sync"
)

// State is the step a participant's conversation is in. It decides how the
// next free-text or photo message is read.
type State int

const (
	Idle State = iota
	AwaitingAddress
	AwaitingGiftCodeOrPhoto
	AwaitingPickupAddress
	AwaitingBroadcastText
)

var stateNames = map[State]string{
	Idle:                    "idle",
	AwaitingAddress:         "awaiting_address",
	AwaitingGiftCodeOrPhoto: "awaiting_gift_code_or_photo",
	AwaitingPickupAddress:   "awaiting_pickup_address",
	AwaitingBroadcastText:   "awaiting_broadcast_text",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is one participant's conversation. PendingPhotoRef carries the
// photo between the photo step and the pickup address step; it is never
// persisted.
type Session struct {
	State           State
	PendingPhotoRef string
}

// SessionStore keeps sessions per participant id. The lock guards the map
// only; sessions of different participants never interact.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]Session)}
}

// Get returns the participant's session, Idle if there is none.
func (s *SessionStore) Get(participantID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[participantID]
}

func (s *SessionStore) Set(participantID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.State == Idle {
		delete(s.sessions, participantID)
		return
	}
	s.sessions[participantID] = session
}

func (s *SessionStore) Reset(participantID int64) {
	s.Set(participantID, Session{})
}
