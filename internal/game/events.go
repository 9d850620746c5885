// internal/game/events.go
//
// The event contract of the state machine. Renderers and timers dispatch
// these; the reducer consumes them. Events carry their payload inline and
// nothing else.

package game

// Event is a discrete occurrence the state machine consumes. Events arriving
// in a phase that does not handle them are no-ops, never errors.
type Event interface {
	isEvent()
}

// StartGame begins a round from the menu or the game-over screen.
type StartGame struct{}

// UpdateInput replaces the raw input buffer while playing.
type UpdateInput struct {
	Text string
}

// CorrectAnswer awards a point and advances to a fresh problem. Raised by
// the auto-validation effect, not by renderers.
type CorrectAnswer struct{}

// HideSuccess clears the transient correct-answer flash.
type HideSuccess struct{}

// Tick advances the countdown by one second while playing.
type Tick struct{}

// SaveScore stages a player name for persistence on the game-over screen.
type SaveScore struct {
	Name string
}

// ReturnToMenu resets everything except the leaderboard cache, from any phase.
type ReturnToMenu struct{}

// LoadScores refreshes the leaderboard cache from the store, from any phase.
type LoadScores struct{}

func (StartGame) isEvent()     {}
func (UpdateInput) isEvent()   {}
func (CorrectAnswer) isEvent() {}
func (HideSuccess) isEvent()   {}
func (Tick) isEvent()          {}
func (SaveScore) isEvent()     {}
func (ReturnToMenu) isEvent()  {}
func (LoadScores) isEvent()    {}
