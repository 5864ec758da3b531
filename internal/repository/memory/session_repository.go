package memory

import (
	"sync"
	"time"

	"ai-schemadesign-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge expired items every 10 minutes.
	// An expired session is only lost convenience state; it is rebuilt from
	// the thread record on the next load.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.ChatId, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(chatId string) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(chatId); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(chatId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(chatId)
}

// TryBeginTurn marks the session busy, creating it when absent. It fails
// with store.ErrTurnInProgress when a turn is already running, so only one
// turn per session can be in flight.
func (r *SessionRepository) TryBeginTurn(chatId string) (*store.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var session *store.Session
	if x, found := r.cache.Get(chatId); found {
		session = x.(*store.Session)
	} else {
		session = store.NewSession(chatId)
	}
	if session.Busy {
		return nil, store.ErrTurnInProgress
	}
	session.Busy = true
	r.cache.Set(chatId, session, cache.DefaultExpiration)
	return session, nil
}

// EndTurn clears the busy flag. Safe to call for a session that has expired
// in the meantime.
func (r *SessionRepository) EndTurn(chatId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(chatId); found {
		session := x.(*store.Session)
		session.Busy = false
		r.cache.Set(chatId, session, cache.DefaultExpiration)
	}
}

// Rekey moves a session to a new chat id. Used once, when the pending "new"
// conversation gets its permanent id on the first successful send.
func (r *SessionRepository) Rekey(oldId, newId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, found := r.cache.Get(oldId)
	if !found {
		return
	}
	session := x.(*store.Session)
	session.ChatId = newId
	r.cache.Delete(oldId)
	r.cache.Set(newId, session, cache.DefaultExpiration)
}
