// internal/game/state.go
//
// Core state for a Math Sprint round.
// Defines:
//   - Phase: coarse game mode (menu / playing / game over).
//   - State: the full snapshot consumed by renderers.
//
// Exactly one State value is current per Machine; transitions replace it
// wholesale (copy-on-write), never mutate it in place.

package game

import (
	"time"

	"mathsprint/internal/problem"
	"mathsprint/internal/scores"
)

// Phase is the coarse-grained mode of the game.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name as exposed to renderers.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	}
	return "unknown"
}

const (
	// RoundSeconds is the countdown length of one round.
	RoundSeconds = 30

	// TickInterval is the cadence of the countdown while playing.
	TickInterval = time.Second

	// SuccessFlash is how long the correct-answer flag stays up before a
	// driver clears it. The delay is a fixed one-shot, independent of
	// whether a new problem has already replaced the solved one.
	SuccessFlash = 500 * time.Millisecond
)

// State is the renderer-facing snapshot of a game session.
type State struct {
	Phase           Phase
	Problem         *problem.Problem // nil outside a round
	Input           string           // raw untrusted text from the player
	Score           int              // correct answers this round
	TimeLeft        int              // seconds, 0..RoundSeconds
	ShowSuccess     bool             // transient flash after a correct answer
	TopScores       []scores.Record  // read-only leaderboard cache
	PendingSaveName string           // name staged by SaveScore
	Saved           bool             // a record was persisted for this game
}

// initialState is the state at process start: menu, empty board cache.
func initialState() State {
	return State{Phase: PhaseMenu}
}
