package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/registration"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("server: session not found")

// session ties a browser to its controller. Handlers hold mu for the whole
// request since controllers are single-owner.
type session struct {
	id   string
	csrf string

	mu   sync.Mutex
	ctrl *form.Controller[registration.FormRecord]
}

// sessionStore keeps sessions in memory with a sliding expiry.
type sessionStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *sessionStore) create(ctrl *form.Controller[registration.FormRecord]) *session {
	sess := &session{
		id:   uuid.NewString(),
		csrf: uuid.NewString(),
		ctrl: ctrl,
	}
	s.cache.Set(sess.id, sess, s.ttl)
	return sess
}

func (s *sessionStore) get(id string) (*session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	value, found := s.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	sess, ok := value.(*session)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.cache.Set(id, sess, s.ttl)
	return sess, nil
}

func (s *sessionStore) delete(id string) {
	s.cache.Delete(id)
}

func (s *sessionStore) count() int {
	return s.cache.ItemCount()
}
