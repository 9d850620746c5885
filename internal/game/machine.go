// internal/game/machine.go
//
// Machine owns the single current State and drives transitions.
//
// Dispatch applies the reducer, then runs post-transition effect handlers
// keyed on the event type; handlers may raise follow-up events, which are
// processed on a small internal queue until it drains. The effects are:
//   - UpdateInput → auto-validate; a matching answer raises CorrectAnswer
//     (re-evaluated on every input change, not polled).
//   - SaveScore   → persist the staged name best-effort, then LoadScores.
//   - ReturnToMenu → LoadScores, so the menu shows a fresh board.
//   - LoadScores  → refresh the TopScores cache from the store.
//
// Timer driving (the 1 s tick and the 500 ms success flash) belongs to the
// drivers; the Machine itself never blocks or schedules.
//
// Machine is not safe for concurrent use; callers that share one across
// goroutines (the HTTP session does) must serialize Dispatch externally.

package game

import (
	"context"

	"mathsprint/internal/problem"
	"mathsprint/internal/scores"
)

// Machine is the single owner of a session's game state.
type Machine struct {
	gen    *problem.Generator
	scores *scores.Store
	state  State
}

// NewMachine constructs a Machine in the menu phase. A nil generator gets a
// time-seeded default. The score store may be nil, in which case the
// leaderboard cache stays empty and saves are dropped.
func NewMachine(gen *problem.Generator, sc *scores.Store) *Machine {
	if gen == nil {
		gen = problem.NewGenerator(nil)
	}
	return &Machine{gen: gen, scores: sc, state: initialState()}
}

// State returns the current snapshot.
func (m *Machine) State() State {
	return m.state
}

// Dispatch applies ev plus any follow-up events raised by effect handlers
// and returns the settled state.
func (m *Machine) Dispatch(ctx context.Context, ev Event) State {
	queue := []Event{ev}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		m.state = Reduce(m.state, e, m.gen.Generate)
		queue = append(queue, m.effects(ctx, e)...)
	}
	return m.state
}

// effects runs side effects for the event just reduced and returns any
// follow-up events.
func (m *Machine) effects(ctx context.Context, ev Event) []Event {
	switch ev.(type) {
	case UpdateInput:
		if m.state.Phase == PhasePlaying && m.state.Problem != nil &&
			problem.IsCorrect(*m.state.Problem, m.state.Input) {
			return []Event{CorrectAnswer{}}
		}

	case SaveScore:
		if m.state.Phase == PhaseGameOver && m.state.PendingSaveName != "" &&
			!m.state.Saved && m.scores != nil {
			// Best-effort: Save swallows storage failures, so a broken
			// backend never corrupts the in-memory state.
			m.scores.Save(ctx, m.state.PendingSaveName, m.state.Score)
			m.state.PendingSaveName = ""
			m.state.Saved = true
			return []Event{LoadScores{}}
		}

	case ReturnToMenu:
		return []Event{LoadScores{}}

	case LoadScores:
		if m.scores != nil {
			m.state.TopScores = m.scores.Top(ctx, scores.DefaultLimit)
		}
	}
	return nil
}
