package memory

import (
	"context"
	"sync"
	"time"

	domainauth "roomfinder/internal/domain/auth"
	domainuser "roomfinder/internal/domain/user"
)

// SessionStore keeps bearer-token sessions in memory. Expired entries are
// dropped lazily on lookup.
type SessionStore struct {
	mu    sync.RWMutex
	items map[domainauth.Token]*domainauth.Session
	now   func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		items: make(map[domainauth.Token]*domainauth.Session),
		now:   time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	if session == nil || session.Token == "" {
		return domainauth.ErrTokenRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.items[session.Token] = &copied
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[token]
	if !ok {
		return nil, domainauth.ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		delete(s.items, token)
		return nil, domainauth.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, id domainuser.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.items {
		if session.UserID == id {
			delete(s.items, token)
		}
	}
	return nil
}

var _ domainauth.SessionStore = (*SessionStore)(nil)
