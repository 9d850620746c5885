// internal/game/reduce.go
//
// The pure reducer: (State, Event) → State.
//
// Problem generation is the one impure dependency of a transition, so it is
// passed in as a function; everything else here is a value computation.
// LoadScores is handled by the Machine (it reads storage) and passes through
// unchanged here.

package game

import "mathsprint/internal/problem"

// Reduce computes the next state. Events not valid in the current phase
// return the state unchanged.
func Reduce(s State, ev Event, generate func() problem.Problem) State {
	switch e := ev.(type) {
	case StartGame:
		if s.Phase != PhaseMenu && s.Phase != PhaseGameOver {
			return s
		}
		p := generate()
		s.Phase = PhasePlaying
		s.Problem = &p
		s.Input = ""
		s.Score = 0
		s.TimeLeft = RoundSeconds
		s.ShowSuccess = false
		s.PendingSaveName = ""
		s.Saved = false
		return s

	case UpdateInput:
		if s.Phase != PhasePlaying {
			return s
		}
		s.Input = e.Text
		return s

	case CorrectAnswer:
		if s.Phase != PhasePlaying {
			return s
		}
		p := generate()
		s.Score++
		s.Problem = &p
		s.Input = ""
		s.ShowSuccess = true
		return s

	case HideSuccess:
		if s.Phase != PhasePlaying {
			return s
		}
		s.ShowSuccess = false
		return s

	case Tick:
		if s.Phase != PhasePlaying {
			return s
		}
		if s.TimeLeft > 0 {
			s.TimeLeft--
		}
		if s.TimeLeft == 0 {
			s.Phase = PhaseGameOver
		}
		return s

	case SaveScore:
		// At most one record per completed game: once persisted, further
		// saves are no-ops until the next round.
		if s.Phase != PhaseGameOver || s.Saved {
			return s
		}
		s.PendingSaveName = e.Name
		return s

	case ReturnToMenu:
		top := s.TopScores
		s = initialState()
		s.TopScores = top
		return s

	case LoadScores:
		return s
	}
	return s
}
