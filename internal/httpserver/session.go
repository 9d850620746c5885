// internal/httpserver/session.go
//
// One browser session = one game Machine plus the timers that drive it.
//
// All dispatches serialize through the session mutex, so the Machine sees a
// single logical owner. After every dispatch the session diffs old vs new
// state to keep its timers in sync:
//   - entering Playing starts a 1 s ticker goroutine; leaving Playing stops
//     it, so no Tick fires outside a round;
//   - each score increment (re)arms the 500 ms flash timer that clears
//     ShowSuccess, superseding any timer still pending.
//
// Sessions are held in an in-memory registry keyed by a UUID carried in the
// signed session cookie.

package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mathsprint/internal/game"
	"mathsprint/internal/scores"
)

// session wraps a Machine with the mutex and timers of one client.
type session struct {
	id string

	mu       sync.Mutex
	m        *game.Machine
	stopTick chan struct{}
	hide     *time.Timer
	hideGen  int
}

// dispatch applies ev under the session lock and reconciles timers against
// the state change.
func (s *session) dispatch(ctx context.Context, ev game.Event) game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.m.State()
	cur := s.m.Dispatch(ctx, ev)
	s.syncTimers(prev, cur)
	return cur
}

// snapshot returns the current state without dispatching.
func (s *session) snapshot() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.State()
}

// syncTimers is called with the lock held.
func (s *session) syncTimers(prev, cur game.State) {
	if cur.Phase == game.PhasePlaying && s.stopTick == nil {
		stop := make(chan struct{})
		s.stopTick = stop
		go s.runTicker(stop)
	}
	if cur.Phase != game.PhasePlaying && s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}

	// The flash clear is keyed on the score advancing, so back-to-back
	// correct answers inside the window supersede the earlier timer.
	// Each timer carries a generation: Stop cannot catch a callback that
	// has already fired and is waiting on the mutex, so the callback checks
	// its generation under the lock and no-ops when it has been superseded.
	if cur.Score > prev.Score && cur.ShowSuccess {
		if s.hide != nil {
			s.hide.Stop()
		}
		s.hideGen++
		gen := s.hideGen
		s.hide = time.AfterFunc(game.SuccessFlash, func() {
			s.clearFlash(gen)
		})
	}
}

// clearFlash dispatches HideSuccess unless the flash timer of generation gen
// has been superseded by a newer one.
func (s *session) clearFlash(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.hideGen {
		return
	}
	prev := s.m.State()
	cur := s.m.Dispatch(context.Background(), game.HideSuccess{})
	s.syncTimers(prev, cur)
}

// runTicker drives the countdown until stop closes.
func (s *session) runTicker(stop chan struct{}) {
	t := time.NewTicker(game.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.dispatch(context.Background(), game.Tick{})
		case <-stop:
			return
		}
	}
}

// sessionRegistry is the mutex-guarded map of live sessions.
type sessionRegistry struct {
	mu   sync.RWMutex
	byID map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{byID: make(map[string]*session)}
}

func (r *sessionRegistry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

// create mints a session with a fresh Machine and primes its leaderboard
// cache.
func (r *sessionRegistry) create(ctx context.Context, sc *scores.Store) *session {
	s := &session{id: uuid.NewString(), m: game.NewMachine(nil, sc)}
	s.dispatch(ctx, game.LoadScores{})
	r.mu.Lock()
	r.byID[s.id] = s
	r.mu.Unlock()
	return s
}
