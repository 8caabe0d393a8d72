package app

import (
	"time"

	"github.com/google/uuid"
)

const maxRecentLookups = 5

// RecentLookup is one successful lookup remembered by the session.
type RecentLookup struct {
	UID       string
	FetchedAt time.Time
	TTL       time.Duration
}

// Session is the state of one interactive run. It holds at most one profile,
// the last one that loaded successfully.
type Session struct {
	ID        string
	CreatedAt time.Time
	Recent    []RecentLookup // Oldest first, at most maxRecentLookups

	profile *Profile
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Recent:    make([]RecentLookup, 0, maxRecentLookups),
	}
}

// Profile returns the current profile, if any lookup has succeeded.
func (s *Session) Profile() (*Profile, bool) {
	return s.profile, s.profile != nil
}

// SetProfile replaces the current profile and records the lookup in the history.
func (s *Session) SetProfile(p *Profile) {
	s.profile = p
	if p != nil && p.Player != nil {
		s.addRecent(RecentLookup{UID: p.Player.UID, FetchedAt: p.FetchedAt, TTL: p.TTL})
	}
}

func (s *Session) addRecent(lookup RecentLookup) {
	// A repeated lookup moves to the end rather than appearing twice.
	for i, existing := range s.Recent {
		if existing.UID == lookup.UID {
			s.Recent = append(s.Recent[:i], s.Recent[i+1:]...)
			break
		}
	}
	s.Recent = append(s.Recent, lookup)
	if len(s.Recent) > maxRecentLookups {
		s.Recent = s.Recent[len(s.Recent)-maxRecentLookups:]
	}
}
