// internal/problem/problem.go
//
// Arithmetic problem domain for Math Sprint.
// Defines:
//   - Op: one of the four arithmetic operations, with symbol and apply fn.
//   - Problem: two small operands, an operation, and the precomputed answer.
//   - IsCorrect: tolerance-based answer checking of raw text input.

package problem

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op identifies one of the four supported arithmetic operations.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// NumOps is the size of the fixed operation set.
const NumOps = 4

// answerTolerance is the maximum absolute difference accepted between a
// parsed answer and the true answer. Generation guarantees integer answers,
// but the comparison stays tolerance-based so float input like "12.0" or a
// fractional near-miss is handled uniformly.
const answerTolerance = 0.01

// Symbol returns the display glyph for the operation.
func (o Op) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	}
	return "?"
}

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMul:
		return "multiplication"
	case OpDiv:
		return "division"
	}
	return "unknown"
}

// Apply evaluates the operation on two integers.
// Division is only ever called with b dividing a evenly (and b != 0);
// the generator enforces that invariant before construction.
func (o Op) Apply(a, b int) int {
	switch o {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	}
	return 0
}

// Problem is a single arithmetic question. Immutable once constructed;
// a new Problem replaces the old one whenever the game needs another.
type Problem struct {
	A      int
	B      int
	Op     Op
	Answer int
}

// New builds a Problem with its answer precomputed.
func New(a, b int, op Op) Problem {
	return Problem{A: a, B: b, Op: op, Answer: op.Apply(a, b)}
}

// Text renders the question as shown to the player, e.g. "3 × 4".
func (p Problem) Text() string {
	return fmt.Sprintf("%d %s %d", p.A, p.Op.Symbol(), p.B)
}

// IsCorrect reports whether raw, parsed as a floating-point number, matches
// the problem's answer within tolerance. Unparseable input is simply wrong;
// this never panics.
func IsCorrect(p Problem, raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}
	return math.Abs(v-float64(p.Answer)) < answerTolerance
}
